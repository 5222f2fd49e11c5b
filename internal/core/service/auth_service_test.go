package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
	"github.com/salesbridge/dashboard-api/internal/pkg/secrets"
)

type stubUserRepo struct {
	createFn      func(ctx context.Context, user *domain.User) (*domain.User, error)
	findByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	findByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	listFn        func(ctx context.Context) ([]*domain.User, error)
	updateFn      func(ctx context.Context, id string, fields map[string]any) (*domain.User, error)
	setActiveFn   func(ctx context.Context, id string, active bool) error
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return s.createFn(ctx, user)
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findByEmailFn(ctx, email)
}

func (s *stubUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserRepo) Update(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
	return s.updateFn(ctx, id, fields)
}

func (s *stubUserRepo) SetActive(ctx context.Context, id string, active bool) error {
	return s.setActiveFn(ctx, id, active)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func newTestAuthService(users ports.UserRepository) *AuthService {
	tokens := NewTokenService("test-secret")
	box := secrets.NewBox("test-secret")
	return NewAuthService(users, tokens, box, zerolog.Nop())
}

func TestAuthService_Login_Success(t *testing.T) {
	stored := &domain.User{
		ID:           "user_1",
		Email:        "alice@example.com",
		PasswordHash: hashPassword(t, "s3cret-pass"),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	repo := &stubUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			if email != "alice@example.com" {
				return nil, domain.ErrUserNotFound
			}
			return stored, nil
		},
	}

	svc := newTestAuthService(repo)
	token, user, err := svc.Login(context.Background(), "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a session token")
	}
	if user.ID != "user_1" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Login_EmailCaseInsensitive(t *testing.T) {
	stored := &domain.User{
		ID:           "user_1",
		Email:        "alice@example.com",
		PasswordHash: hashPassword(t, "s3cret-pass"),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	repo := &stubUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			if email != "alice@example.com" {
				t.Fatalf("email not normalized: %q", email)
			}
			return stored, nil
		},
	}

	svc := newTestAuthService(repo)
	if _, _, err := svc.Login(context.Background(), "  Alice@Example.COM ", "s3cret-pass"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

// Unknown email, wrong password and disabled accounts must be
// indistinguishable: all collapse to ErrInvalidCredentials.
func TestAuthService_Login_FailuresAreGeneric(t *testing.T) {
	stored := &domain.User{
		ID:           "user_1",
		Email:        "alice@example.com",
		PasswordHash: hashPassword(t, "s3cret-pass"),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	disabled := &domain.User{
		ID:           "user_2",
		Email:        "bob@example.com",
		PasswordHash: hashPassword(t, "s3cret-pass"),
		Role:         domain.RoleSDR,
		IsActive:     false,
	}
	repo := &stubUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			switch email {
			case "alice@example.com":
				return stored, nil
			case "bob@example.com":
				return disabled, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
	svc := newTestAuthService(repo)

	cases := []struct {
		name            string
		email, password string
	}{
		{"unknown email", "nobody@example.com", "s3cret-pass"},
		{"wrong password", "alice@example.com", "wrong"},
		{"disabled account", "bob@example.com", "s3cret-pass"},
		{"empty credentials", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tc.email, tc.password)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_CreateUser_InvalidRole(t *testing.T) {
	svc := newTestAuthService(&stubUserRepo{})
	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Name:     "Eve",
		Email:    "eve@example.com",
		Password: "s3cret-pass",
		Role:     "SUPERUSER",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_CreateUser_ClientNeedsClientID(t *testing.T) {
	svc := newTestAuthService(&stubUserRepo{})
	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "s3cret-pass",
		Role:     domain.RoleClient,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_RevealPassword_Roundtrip(t *testing.T) {
	var created *domain.User
	repo := &stubUserRepo{
		createFn: func(ctx context.Context, user *domain.User) (*domain.User, error) {
			created = user
			created.ID = "user_9"
			return created, nil
		},
		findByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			if created == nil || id != created.ID {
				return nil, domain.ErrUserNotFound
			}
			return created, nil
		},
	}
	svc := newTestAuthService(repo)

	if _, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Name:     "Dan",
		Email:    "dan@example.com",
		Password: "original-pass",
		Role:     domain.RoleSDR,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	password, err := svc.RevealPassword(context.Background(), "user_9")
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if password != "original-pass" {
		t.Fatalf("expected original password, got %q", password)
	}
}
