package service

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// RefValidator reports whether a string is a well-formed document reference.
// The mongo layer provides the concrete check; services stay driver-free.
type RefValidator func(id string) bool

// InvoiceService implements invoice management.
type InvoiceService struct {
	invoices ports.InvoiceRepository
	clients  ports.ClientRepository
	files    ports.FileStore
	cache    ports.CalendarCache
	validRef RefValidator
	log      zerolog.Logger
}

func NewInvoiceService(
	invoices ports.InvoiceRepository,
	clients ports.ClientRepository,
	files ports.FileStore,
	cache ports.CalendarCache,
	validRef RefValidator,
	log zerolog.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoices: invoices,
		clients:  clients,
		files:    files,
		cache:    cache,
		validRef: validRef,
		log:      log,
	}
}

// Create inserts a new invoice. At most one invoice may exist per
// (client, month, year); duplicates fail with domain.ErrInvoiceExists.
func (s *InvoiceService) Create(ctx context.Context, input ports.CreateInvoiceInput) (*domain.Invoice, error) {
	if input.Month < 1 || input.Month > 12 || input.Year < 2000 {
		return nil, domain.ErrValidation
	}
	if input.Amount < 0 {
		return nil, domain.ErrValidation
	}
	if _, err := s.clients.FindByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	description := input.Description
	if description == "" {
		description = input.TypeOfService
	}

	now := time.Now().UTC()
	inv := &domain.Invoice{
		ClientID:      input.ClientID,
		Month:         input.Month,
		Year:          input.Year,
		Amount:        input.Amount,
		Currency:      input.Currency,
		TypeOfService: input.TypeOfService,
		Description:   description,
		Status:        domain.InvoiceGenerated,
		InvoiceDate:   input.InvoiceDate,
		DueDate:       input.DueDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.invoices.Create(ctx, inv)
	if err != nil {
		return nil, err
	}
	s.invalidateCalendar(ctx, created)
	s.log.Info().Str("invoice_id", created.ID).Str("client_id", created.ClientID).Msg("invoice created")
	return created, nil
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.invoices.FindByID(ctx, id)
}

func (s *InvoiceService) GetForClient(ctx context.Context, id, clientID string) (*domain.Invoice, error) {
	return s.invoices.FindByIDForClient(ctx, id, clientID)
}

func (s *InvoiceService) ListByClient(ctx context.Context, clientID string) ([]*domain.Invoice, error) {
	return s.invoices.ListByClient(ctx, clientID)
}

// Update applies a partial update. Status changes are checked against the
// transition guard: PAID is terminal.
func (s *InvoiceService) Update(ctx context.Context, id string, patch ports.InvoicePatch) (*domain.Invoice, error) {
	current, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if patch.Amount != nil {
		if *patch.Amount < 0 {
			return nil, domain.ErrValidation
		}
		fields["amount"] = *patch.Amount
	}
	if patch.Currency != nil {
		fields["currency"] = *patch.Currency
	}
	if patch.TypeOfService != nil {
		fields["typeOfService"] = *patch.TypeOfService
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.InvoiceDate != nil {
		fields["invoiceDate"] = patch.InvoiceDate.UTC()
	}
	if patch.DueDate != nil {
		fields["dueDate"] = patch.DueDate.UTC()
	}
	if patch.Status != nil {
		next := *patch.Status
		if !domain.ValidInvoiceStatus(next) {
			return nil, domain.ErrValidation
		}
		if !current.Status.CanTransitionTo(next) {
			return nil, domain.ErrInvalidInvoiceStatus
		}
		fields["status"] = next
		if next == domain.InvoicePaid && current.PaidAt == nil {
			fields["paidAt"] = time.Now().UTC()
		}
	}
	if len(fields) == 0 {
		return current, nil
	}
	fields["updatedAt"] = time.Now().UTC()

	updated, err := s.invoices.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.invalidateCalendar(ctx, updated)
	return updated, nil
}

// MarkPaid transitions one invoice to PAID. A second call fails with
// domain.ErrInvoiceAlreadyPaid and leaves paidAt untouched.
func (s *InvoiceService) MarkPaid(ctx context.Context, id string, paidAt *time.Time) (*domain.Invoice, error) {
	current, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.InvoicePaid {
		return nil, domain.ErrInvoiceAlreadyPaid
	}

	when := time.Now().UTC()
	if paidAt != nil {
		when = paidAt.UTC()
	}

	updated, err := s.invoices.Update(ctx, id, map[string]any{
		"status":    domain.InvoicePaid,
		"paidAt":    when,
		"updatedAt": time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	s.invalidateCalendar(ctx, updated)
	s.log.Info().Str("invoice_id", id).Time("paid_at", when).Msg("invoice paid")
	return updated, nil
}

// BulkMarkPaid filters ids down to well-formed references and pays every
// matching invoice not already PAID in one multi-document update.
// Concurrent single-invoice writes race with last-write-wins semantics.
func (s *InvoiceService) BulkMarkPaid(ctx context.Context, ids []string, paidAt *time.Time) (*ports.BulkPayResult, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if s.validRef(id) {
			valid = append(valid, id)
		}
	}

	result := &ports.BulkPayResult{Requested: len(ids), ValidIDs: len(valid)}
	if len(valid) == 0 {
		return result, nil
	}

	when := time.Now().UTC()
	if paidAt != nil {
		when = paidAt.UTC()
	}

	modified, err := s.invoices.BulkMarkPaid(ctx, valid, when)
	if err != nil {
		return nil, err
	}
	result.ModifiedCount = modified

	// The touched invoices may span several months; drop every affected
	// month view so no stale calendar outlives the write.
	if s.cache != nil {
		touched, err := s.invoices.ListByIDs(ctx, valid)
		if err != nil {
			s.log.Warn().Err(err).Msg("bulk pay: listing invoices for cache invalidation failed")
		}
		seen := make(map[string]struct{}, len(touched))
		for _, inv := range touched {
			d := inv.EffectiveDate().UTC()
			key := d.Format("2006-01")
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			s.cache.Invalidate(ctx, d.Year(), int(d.Month()))
		}
	}

	s.log.Info().Int("requested", result.Requested).Int64("modified", modified).Msg("bulk invoices paid")
	return result, nil
}

// AttachFile stores a PDF in the blob store and links it to the invoice,
// replacing any previous file.
func (s *InvoiceService) AttachFile(ctx context.Context, id, name, contentType string, r io.Reader) (*domain.Invoice, error) {
	current, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fileID, err := s.files.Upload(ctx, name, contentType, r)
	if err != nil {
		return nil, err
	}
	if current.FileID != "" {
		if err := s.files.Delete(ctx, current.FileID); err != nil {
			s.log.Warn().Err(err).Str("file_id", current.FileID).Msg("failed to delete replaced invoice file")
		}
	}

	return s.invoices.Update(ctx, id, map[string]any{
		"fileId":    fileID,
		"updatedAt": time.Now().UTC(),
	})
}

func (s *InvoiceService) OpenFile(ctx context.Context, id string) (io.ReadCloser, *ports.FileInfo, error) {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if inv.FileID == "" {
		return nil, nil, domain.ErrFileNotFound
	}
	return s.files.Open(ctx, inv.FileID)
}

// OpenFileForClient streams an invoice file only when the invoice belongs
// to the requesting client.
func (s *InvoiceService) OpenFileForClient(ctx context.Context, id, clientID string) (io.ReadCloser, *ports.FileInfo, error) {
	inv, err := s.invoices.FindByIDForClient(ctx, id, clientID)
	if err != nil {
		return nil, nil, err
	}
	if inv.FileID == "" {
		return nil, nil, domain.ErrFileNotFound
	}
	return s.files.Open(ctx, inv.FileID)
}

func (s *InvoiceService) invalidateCalendar(ctx context.Context, inv *domain.Invoice) {
	if s.cache == nil || inv == nil {
		return
	}
	d := inv.EffectiveDate().UTC()
	s.cache.Invalidate(ctx, d.Year(), int(d.Month()))
}
