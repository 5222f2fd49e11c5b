package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// LicenseService implements license management including auto-generation.
type LicenseService struct {
	licenses    ports.LicenseRepository
	clients     ports.ClientRepository
	assignments ports.AssignmentRepository
	log         zerolog.Logger
}

func NewLicenseService(licenses ports.LicenseRepository, clients ports.ClientRepository, assignments ports.AssignmentRepository, log zerolog.Logger) *LicenseService {
	return &LicenseService{licenses: licenses, clients: clients, assignments: assignments, log: log}
}

func (s *LicenseService) ListByClient(ctx context.Context, clientID string) ([]*domain.License, error) {
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.licenses.ListByClient(ctx, clientID)
}

// ListByIDs resolves an explicit subset of licenses, preserving repository
// order. Unknown ids are simply absent from the result.
func (s *LicenseService) ListByIDs(ctx context.Context, ids []string) ([]*domain.License, error) {
	if len(ids) == 0 {
		return []*domain.License{}, nil
	}
	return s.licenses.ListByIDs(ctx, ids)
}

// Generate tops the client up to targetLicenses active licenses: it creates
// exactly target-existing new records, then unions the new ids into every
// SDR assignment for the client. A target at or below the current count is
// a no-op.
func (s *LicenseService) Generate(ctx context.Context, clientID string, targetLicenses int) (*ports.GenerateLicensesResult, error) {
	if targetLicenses < 0 {
		return nil, domain.ErrValidation
	}
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return nil, err
	}

	existing, err := s.licenses.CountByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	missing := targetLicenses - int(existing)
	if missing <= 0 {
		return &ports.GenerateLicensesResult{Existing: existing}, nil
	}

	now := time.Now().UTC()
	batch := make([]*domain.License, 0, missing)
	for i := 0; i < missing; i++ {
		batch = append(batch, &domain.License{
			ClientID:  clientID,
			Status:    domain.LicenseActive,
			StartDate: now,
			CreatedAt: now,
		})
	}

	created, err := s.licenses.CreateMany(ctx, batch)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(created))
	for _, l := range created {
		ids = append(ids, l.ID)
	}
	if err := s.assignments.AddLicenseIDs(ctx, clientID, ids); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("client_id", clientID).
		Int("created", len(created)).
		Int64("existing", existing).
		Msg("licenses generated")

	return &ports.GenerateLicensesResult{Created: created, Existing: existing}, nil
}

func (s *LicenseService) Pause(ctx context.Context, id string) error {
	return s.licenses.SetStatus(ctx, id, domain.LicensePaused)
}

func (s *LicenseService) Resume(ctx context.Context, id string) error {
	return s.licenses.SetStatus(ctx, id, domain.LicenseActive)
}

func (s *LicenseService) Delete(ctx context.Context, id string) error {
	if _, err := s.licenses.FindByID(ctx, id); err != nil {
		return err
	}
	return s.licenses.Delete(ctx, id)
}
