package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
)

func TestAssignmentService_Assign_RejectsNonSdr(t *testing.T) {
	users := &stubUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Role: domain.RoleAdmin}, nil
		},
	}

	svc := NewAssignmentService(&stubAssignmentRepo{}, users, &stubClientRepo{}, &stubLicenseRepo{}, zerolog.Nop())
	_, err := svc.Assign(context.Background(), "user_1", "client_1", nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for non-sdr user, got %v", err)
	}
}

func TestAssignmentService_Assign_FiltersForeignLicenses(t *testing.T) {
	users := &stubUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Role: domain.RoleSDR}, nil
		},
	}
	clients := &stubClientRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Client, error) {
			return &domain.Client{ID: id}, nil
		},
	}
	licenses := &stubLicenseRepo{
		listByClientFn: func(ctx context.Context, clientID string) ([]*domain.License, error) {
			return []*domain.License{{ID: "lic_1"}, {ID: "lic_2"}}, nil
		},
	}
	assignments := &stubAssignmentRepo{
		createFn: func(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error) {
			return a, nil
		},
	}

	svc := NewAssignmentService(assignments, users, clients, licenses, zerolog.Nop())
	_, err := svc.Assign(context.Background(), "sdr_1", "client_1", []string{"lic_1", "lic_other", "lic_1"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation when a license belongs to another client, got %v", err)
	}
}

func TestAssignmentService_Assign_DuplicatePair(t *testing.T) {
	users := &stubUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Role: domain.RoleSDR}, nil
		},
	}
	clients := &stubClientRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Client, error) {
			return &domain.Client{ID: id}, nil
		},
	}
	assignments := &stubAssignmentRepo{
		createFn: func(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error) {
			return nil, domain.ErrAssignmentExists
		},
	}

	svc := NewAssignmentService(assignments, users, clients, &stubLicenseRepo{}, zerolog.Nop())
	_, err := svc.Assign(context.Background(), "sdr_1", "client_1", nil)
	if !errors.Is(err, domain.ErrAssignmentExists) {
		t.Fatalf("expected ErrAssignmentExists, got %v", err)
	}
}

func TestAssignmentService_SetChat_NotAssigned(t *testing.T) {
	assignments := &stubAssignmentRepo{
		findBySdrAndClientFn: func(ctx context.Context, sdrID, clientID string) (*domain.Assignment, error) {
			return nil, domain.ErrAssignmentNotFound
		},
	}

	svc := NewAssignmentService(assignments, &stubUserRepo{}, &stubClientRepo{}, &stubLicenseRepo{}, zerolog.Nop())
	if err := svc.SetChat(context.Background(), "sdr_1", "client_1", "hello"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAssignmentService_SetChat_ReplacesBlob(t *testing.T) {
	var gotID, gotChat string
	assignments := &stubAssignmentRepo{
		findBySdrAndClientFn: func(ctx context.Context, sdrID, clientID string) (*domain.Assignment, error) {
			return &domain.Assignment{ID: "as_1", SdrID: sdrID, ClientID: clientID}, nil
		},
		setChatHistoryFn: func(ctx context.Context, id string, chat string) error {
			gotID, gotChat = id, chat
			return nil
		},
	}

	svc := NewAssignmentService(assignments, &stubUserRepo{}, &stubClientRepo{}, &stubLicenseRepo{}, zerolog.Nop())
	if err := svc.SetChat(context.Background(), "sdr_1", "client_1", `[{"from":"sdr"}]`); err != nil {
		t.Fatalf("set chat: %v", err)
	}
	if gotID != "as_1" || gotChat != `[{"from":"sdr"}]` {
		t.Fatalf("unexpected write: %q %q", gotID, gotChat)
	}
}
