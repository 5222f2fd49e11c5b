package ports

import (
	"context"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
)

// UpdateRepository persists SDR-authored updates.
type UpdateRepository interface {
	Create(ctx context.Context, u *domain.Update) (*domain.Update, error)
	FindByID(ctx context.Context, id string) (*domain.Update, error)
	ListBySdr(ctx context.Context, sdrID string) ([]*domain.Update, error)
	ListByClient(ctx context.Context, clientID string, visibleOnly bool) ([]*domain.Update, error)
	MarkRead(ctx context.Context, id string) error
}

// ReportRepository persists metric reports.
type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) (*domain.Report, error)
	FindByID(ctx context.Context, id string) (*domain.Report, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Report, error)
}

// NoteRepository persists admin notes.
type NoteRepository interface {
	Create(ctx context.Context, n *domain.AdminNote) (*domain.AdminNote, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.AdminNote, error)
	Delete(ctx context.Context, id string) error
}

// AuditRepository persists audit entries. Insert is called from the async
// writer, never from request handlers directly.
type AuditRepository interface {
	Insert(ctx context.Context, e *domain.AuditEntry) error
	List(ctx context.Context, limit int64) ([]*domain.AuditEntry, error)
}

// AuditSink is what handlers and services see: fire-and-forget enqueue.
type AuditSink interface {
	Record(e domain.AuditEntry)
}

// NotificationRepository persists per-user notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}

// ContractRepository persists contracts.
type ContractRepository interface {
	Create(ctx context.Context, c *domain.Contract) (*domain.Contract, error)
	FindByID(ctx context.Context, id string) (*domain.Contract, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Contract, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Contract, error)
}

// Mailer delivers outbound mail. The production implementation is a stub
// that logs the message; delivery internals are out of scope.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// CreateUpdateInput carries the fields for a new SDR update.
type CreateUpdateInput struct {
	SdrID           string
	ClientID        string
	Type            domain.UpdateType
	Title           string
	Body            string
	VisibleToClient bool
}

// UpdateService implements SDR updates with portal notification fan-out.
type UpdateService interface {
	Create(ctx context.Context, input CreateUpdateInput) (*domain.Update, error)
	ListBySdr(ctx context.Context, sdrID string) ([]*domain.Update, error)
	ListForClient(ctx context.Context, clientID string) ([]*domain.Update, error)
	ListByClientAll(ctx context.Context, clientID string) ([]*domain.Update, error)
	// MarkRead flags a client-visible update as read; clientID scopes the
	// operation to the caller's own updates.
	MarkRead(ctx context.Context, id, clientID string) error
}

// ReportService implements report management.
type ReportService interface {
	Create(ctx context.Context, r *domain.Report) (*domain.Report, error)
	Get(ctx context.Context, id string) (*domain.Report, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Report, error)
}

// RecordsService bundles the small supporting records: admin notes,
// notifications, contracts and the audit trail.
type RecordsService interface {
	CreateNote(ctx context.Context, adminID, clientID, body string) (*domain.AdminNote, error)
	ListNotes(ctx context.Context, clientID string) ([]*domain.AdminNote, error)
	DeleteNote(ctx context.Context, id string) error

	ListNotifications(ctx context.Context, userID string) ([]*domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID string) error

	CreateContract(ctx context.Context, c *domain.Contract) (*domain.Contract, error)
	GetContract(ctx context.Context, id string) (*domain.Contract, error)
	ListContracts(ctx context.Context, clientID string) ([]*domain.Contract, error)
	UpdateContractStatus(ctx context.Context, id string, status domain.ContractStatus) (*domain.Contract, error)

	ListAudit(ctx context.Context, limit int64) ([]*domain.AuditEntry, error)
}
