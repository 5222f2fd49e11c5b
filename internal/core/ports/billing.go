package ports

import (
	"context"
	"io"
	"time"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
)

// InvoiceRepository persists invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	FindByID(ctx context.Context, id string) (*domain.Invoice, error)
	// FindByIDForClient scopes the lookup to one client; another client's
	// invoice is indistinguishable from a missing one.
	FindByIDForClient(ctx context.Context, id, clientID string) (*domain.Invoice, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Invoice, error)
	ListByIDs(ctx context.Context, ids []string) ([]*domain.Invoice, error)
	// ListByPeriod selects invoices whose invoiceDate falls inside
	// [from, to), falling back to createdAt for documents without one.
	ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.Invoice, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Invoice, error)
	// BulkMarkPaid sets status=PAID and paidAt on every listed invoice not
	// already PAID, returning the number of documents modified.
	BulkMarkPaid(ctx context.Context, ids []string, paidAt time.Time) (int64, error)
}

// FileInfo describes a stored blob for response header shaping.
type FileInfo struct {
	Name        string
	ContentType string
	Length      int64
}

// FileStore is the blob storage used for invoice PDFs.
type FileStore interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error)
	Open(ctx context.Context, fileID string) (io.ReadCloser, *FileInfo, error)
	Delete(ctx context.Context, fileID string) error
}

// CreateInvoiceInput carries the fields for a new invoice. Description
// defaults to TypeOfService when empty.
type CreateInvoiceInput struct {
	ClientID      string
	Month         int
	Year          int
	Amount        float64
	Currency      string
	TypeOfService string
	Description   string
	InvoiceDate   *time.Time
	DueDate       time.Time
}

// InvoicePatch carries mutable invoice fields for partial updates.
type InvoicePatch struct {
	Amount        *float64
	Currency      *string
	TypeOfService *string
	Description   *string
	Status        *domain.InvoiceStatus
	InvoiceDate   *time.Time
	DueDate       *time.Time
}

// BulkPayResult reports how many invoices a bulk mark-paid touched.
type BulkPayResult struct {
	Requested     int
	ValidIDs      int
	ModifiedCount int64
}

// InvoiceService implements invoice management.
type InvoiceService interface {
	Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error)
	Get(ctx context.Context, id string) (*domain.Invoice, error)
	GetForClient(ctx context.Context, id, clientID string) (*domain.Invoice, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Invoice, error)
	Update(ctx context.Context, id string, patch InvoicePatch) (*domain.Invoice, error)
	// MarkPaid transitions one invoice to PAID. A second call fails with
	// domain.ErrInvoiceAlreadyPaid and leaves paidAt untouched.
	MarkPaid(ctx context.Context, id string, paidAt *time.Time) (*domain.Invoice, error)
	// BulkMarkPaid filters ids down to well-formed references and pays every
	// matching invoice not already PAID.
	BulkMarkPaid(ctx context.Context, ids []string, paidAt *time.Time) (*BulkPayResult, error)
	AttachFile(ctx context.Context, id, name, contentType string, r io.Reader) (*domain.Invoice, error)
	OpenFile(ctx context.Context, id string) (io.ReadCloser, *FileInfo, error)
	OpenFileForClient(ctx context.Context, id, clientID string) (io.ReadCloser, *FileInfo, error)
}

// CalendarDay groups the invoices landing on one day of the month.
type CalendarDay []*domain.Invoice

// BillingCalendar is the month view consumed by the dashboard calendar.
type BillingCalendar struct {
	Year          int                     `json:"year"`
	Month         int                     `json:"month"`
	Days          map[string]CalendarDay  `json:"days"`
	TotalInvoices int                     `json:"totalInvoices"`
	TotalPaid     float64                 `json:"totalPaid"`
}

// CalendarCache caches assembled month views.
type CalendarCache interface {
	Get(ctx context.Context, year, month int) (*BillingCalendar, bool)
	Set(ctx context.Context, cal *BillingCalendar)
	Invalidate(ctx context.Context, year, month int)
}

// BillingService assembles the billing calendar.
type BillingService interface {
	Calendar(ctx context.Context, year, month int) (*BillingCalendar, error)
}
