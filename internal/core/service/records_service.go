package service

import (
	"context"
	"time"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// RecordsService bundles the small supporting records: admin notes,
// notifications, contracts and the audit trail.
type RecordsService struct {
	notes         ports.NoteRepository
	notifications ports.NotificationRepository
	contracts     ports.ContractRepository
	audits        ports.AuditRepository
	clients       ports.ClientRepository
}

func NewRecordsService(
	notes ports.NoteRepository,
	notifications ports.NotificationRepository,
	contracts ports.ContractRepository,
	audits ports.AuditRepository,
	clients ports.ClientRepository,
) *RecordsService {
	return &RecordsService{
		notes:         notes,
		notifications: notifications,
		contracts:     contracts,
		audits:        audits,
		clients:       clients,
	}
}

func (s *RecordsService) CreateNote(ctx context.Context, adminID, clientID, body string) (*domain.AdminNote, error) {
	if body == "" {
		return nil, domain.ErrValidation
	}
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.notes.Create(ctx, &domain.AdminNote{
		AdminID:   adminID,
		ClientID:  clientID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *RecordsService) ListNotes(ctx context.Context, clientID string) ([]*domain.AdminNote, error) {
	return s.notes.ListByClient(ctx, clientID)
}

func (s *RecordsService) DeleteNote(ctx context.Context, id string) error {
	return s.notes.Delete(ctx, id)
}

func (s *RecordsService) ListNotifications(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

func (s *RecordsService) MarkNotificationRead(ctx context.Context, id, userID string) error {
	return s.notifications.MarkRead(ctx, id, userID)
}

func (s *RecordsService) CreateContract(ctx context.Context, c *domain.Contract) (*domain.Contract, error) {
	if c.Title == "" {
		return nil, domain.ErrValidation
	}
	if _, err := s.clients.FindByID(ctx, c.ClientID); err != nil {
		return nil, err
	}
	if c.Status == "" {
		c.Status = domain.ContractDraft
	}
	c.CreatedAt = time.Now().UTC()
	return s.contracts.Create(ctx, c)
}

func (s *RecordsService) GetContract(ctx context.Context, id string) (*domain.Contract, error) {
	return s.contracts.FindByID(ctx, id)
}

func (s *RecordsService) ListContracts(ctx context.Context, clientID string) ([]*domain.Contract, error) {
	return s.contracts.ListByClient(ctx, clientID)
}

func (s *RecordsService) UpdateContractStatus(ctx context.Context, id string, status domain.ContractStatus) (*domain.Contract, error) {
	switch status {
	case domain.ContractDraft, domain.ContractActive, domain.ContractExpired:
	default:
		return nil, domain.ErrValidation
	}
	return s.contracts.Update(ctx, id, map[string]any{"status": status})
}

func (s *RecordsService) ListAudit(ctx context.Context, limit int64) ([]*domain.AuditEntry, error) {
	return s.audits.List(ctx, limit)
}
