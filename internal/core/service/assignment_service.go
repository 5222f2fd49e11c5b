package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// AssignmentService implements SDR-client assignment management.
type AssignmentService struct {
	assignments ports.AssignmentRepository
	users       ports.UserRepository
	clients     ports.ClientRepository
	licenses    ports.LicenseRepository
	log         zerolog.Logger
}

func NewAssignmentService(
	assignments ports.AssignmentRepository,
	users ports.UserRepository,
	clients ports.ClientRepository,
	licenses ports.LicenseRepository,
	log zerolog.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		users:       users,
		clients:     clients,
		licenses:    licenses,
		log:         log,
	}
}

// Assign links an SDR to a client. The pair is unique; a second attempt
// fails with domain.ErrAssignmentExists.
func (s *AssignmentService) Assign(ctx context.Context, sdrID, clientID string, licenseIDs []string) (*domain.Assignment, error) {
	sdr, err := s.users.FindByID(ctx, sdrID)
	if err != nil {
		return nil, err
	}
	if sdr.Role != domain.RoleSDR {
		return nil, domain.ErrValidation
	}
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	licenseIDs, err = s.clientLicenseSubset(ctx, clientID, licenseIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := &domain.Assignment{
		SdrID:      sdrID,
		ClientID:   clientID,
		LicenseIDs: licenseIDs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	created, err := s.assignments.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("sdr_id", sdrID).Str("client_id", clientID).Msg("sdr assigned")
	return created, nil
}

func (s *AssignmentService) Get(ctx context.Context, id string) (*domain.Assignment, error) {
	return s.assignments.FindByID(ctx, id)
}

func (s *AssignmentService) ListBySdr(ctx context.Context, sdrID string) ([]*domain.Assignment, error) {
	return s.assignments.ListBySdr(ctx, sdrID)
}

func (s *AssignmentService) ListByClient(ctx context.Context, clientID string) ([]*domain.Assignment, error) {
	return s.assignments.ListByClient(ctx, clientID)
}

func (s *AssignmentService) SetLicenses(ctx context.Context, id string, licenseIDs []string) error {
	a, err := s.assignments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	licenseIDs, err = s.clientLicenseSubset(ctx, a.ClientID, licenseIDs)
	if err != nil {
		return err
	}
	return s.assignments.SetLicenseIDs(ctx, id, licenseIDs)
}

// SetChat replaces the chat history blob on the caller's own assignment.
func (s *AssignmentService) SetChat(ctx context.Context, sdrID, clientID, chat string) error {
	a, err := s.assignments.FindBySdrAndClient(ctx, sdrID, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrAssignmentNotFound) {
			return domain.ErrForbidden
		}
		return err
	}
	return s.assignments.SetChatHistory(ctx, a.ID, chat)
}

func (s *AssignmentService) Remove(ctx context.Context, id string) error {
	if _, err := s.assignments.FindByID(ctx, id); err != nil {
		return err
	}
	return s.assignments.Delete(ctx, id)
}

// clientLicenseSubset verifies the requested license ids all belong to the
// client and returns them deduplicated.
func (s *AssignmentService) clientLicenseSubset(ctx context.Context, clientID string, licenseIDs []string) ([]string, error) {
	if len(licenseIDs) == 0 {
		return nil, nil
	}
	owned, err := s.licenses.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	ownedSet := make(map[string]struct{}, len(owned))
	for _, l := range owned {
		ownedSet[l.ID] = struct{}{}
	}

	seen := make(map[string]struct{}, len(licenseIDs))
	out := make([]string, 0, len(licenseIDs))
	for _, id := range licenseIDs {
		if _, ok := ownedSet[id]; !ok {
			return nil, domain.ErrValidation
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
