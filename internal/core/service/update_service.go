package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// UpdateService implements SDR updates with portal notification fan-out.
type UpdateService struct {
	updates       ports.UpdateRepository
	assignments   ports.AssignmentRepository
	users         ports.UserRepository
	notifications ports.NotificationRepository
	mailer        ports.Mailer
	log           zerolog.Logger
}

func NewUpdateService(
	updates ports.UpdateRepository,
	assignments ports.AssignmentRepository,
	users ports.UserRepository,
	notifications ports.NotificationRepository,
	mailer ports.Mailer,
	log zerolog.Logger,
) *UpdateService {
	return &UpdateService{
		updates:       updates,
		assignments:   assignments,
		users:         users,
		notifications: notifications,
		mailer:        mailer,
		log:           log,
	}
}

// Create records an SDR update against an assigned client. Client-visible
// updates fan out a notification to every portal user of the client.
func (s *UpdateService) Create(ctx context.Context, input ports.CreateUpdateInput) (*domain.Update, error) {
	if input.Title == "" {
		return nil, domain.ErrValidation
	}
	if !domain.ValidUpdateType(input.Type) {
		return nil, domain.ErrValidation
	}

	// Only an assigned SDR may post against a client.
	if _, err := s.assignments.FindBySdrAndClient(ctx, input.SdrID, input.ClientID); err != nil {
		if errors.Is(err, domain.ErrAssignmentNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, err
	}

	u := &domain.Update{
		SdrID:           input.SdrID,
		ClientID:        input.ClientID,
		Type:            input.Type,
		Title:           input.Title,
		Body:            input.Body,
		VisibleToClient: input.VisibleToClient,
		CreatedAt:       time.Now().UTC(),
	}
	created, err := s.updates.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	if created.VisibleToClient {
		s.fanOut(ctx, created)
	}
	return created, nil
}

// fanOut notifies the client's portal users. Failures are logged, never
// surfaced: the update itself is already persisted.
func (s *UpdateService) fanOut(ctx context.Context, u *domain.Update) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("update_id", u.ID).Msg("notification fan-out: list users failed")
		return
	}
	for _, usr := range users {
		if usr.Role != domain.RoleClient || usr.ClientID != u.ClientID || !usr.IsActive {
			continue
		}
		_, err := s.notifications.Create(ctx, &domain.Notification{
			UserID:    usr.ID,
			Kind:      "update",
			Title:     fmt.Sprintf("New %s update", u.Type),
			Body:      u.Title,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", usr.ID).Msg("notification insert failed")
			continue
		}
		if err := s.mailer.Send(ctx, usr.Email, "New update from your SDR", u.Title); err != nil {
			s.log.Warn().Err(err).Str("user_id", usr.ID).Msg("mail send failed")
		}
	}
}

func (s *UpdateService) ListBySdr(ctx context.Context, sdrID string) ([]*domain.Update, error) {
	return s.updates.ListBySdr(ctx, sdrID)
}

// ListForClient returns only client-visible updates, for the portal.
func (s *UpdateService) ListForClient(ctx context.Context, clientID string) ([]*domain.Update, error) {
	return s.updates.ListByClient(ctx, clientID, true)
}

// ListByClientAll returns every update for a client, for admin views.
func (s *UpdateService) ListByClientAll(ctx context.Context, clientID string) ([]*domain.Update, error) {
	return s.updates.ListByClient(ctx, clientID, false)
}

// MarkRead flags a client-visible update as read. The clientID scope means
// another client's update reads as missing, not forbidden.
func (s *UpdateService) MarkRead(ctx context.Context, id, clientID string) error {
	u, err := s.updates.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u.ClientID != clientID || !u.VisibleToClient {
		return domain.ErrUpdateNotFound
	}
	return s.updates.MarkRead(ctx, id)
}
