package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
	"github.com/salesbridge/dashboard-api/internal/pkg/secrets"
)

// AuthService implements login and admin-side account management.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	box    *secrets.Box
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, box *secrets.Box, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, box: box, log: log}
}

// Login verifies credentials and returns a signed session token. Unknown
// email, wrong password and disabled accounts all map to
// domain.ErrInvalidCredentials so responses cannot leak user existence.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ports.TokenClaims{
		UserID:   user.ID,
		Role:     user.Role,
		ClientID: user.ClientID,
	})
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user logged in")
	return token, user, nil
}

// CreateUser provisions an account: bcrypt hash for verification plus an
// encrypted copy for admin recovery.
func (s *AuthService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrValidation
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrValidation
	}
	if input.Role == domain.RoleClient && input.ClientID == "" {
		return nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	enc, err := s.box.Encrypt(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        normalizeEmail(input.Email),
		PasswordHash: string(hash),
		PasswordEnc:  enc,
		Role:         input.Role,
		IsActive:     true,
		ClientID:     input.ClientID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created")
	return created, nil
}

// UpdateUser applies a partial update. A new password refreshes both the
// hash and the encrypted copy.
func (s *AuthService) UpdateUser(ctx context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Email != nil {
		fields["email"] = normalizeEmail(*patch.Email)
	}
	if patch.Role != nil {
		if !domain.ValidRole(*patch.Role) {
			return nil, domain.ErrValidation
		}
		fields["role"] = *patch.Role
	}
	if patch.ClientID != nil {
		fields["clientId"] = *patch.ClientID
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		enc, err := s.box.Encrypt(*patch.Password)
		if err != nil {
			return nil, err
		}
		fields["passwordHash"] = string(hash)
		fields["passwordEnc"] = enc
	}
	if len(fields) == 0 {
		return s.users.FindByID(ctx, id)
	}
	fields["updatedAt"] = time.Now().UTC()

	return s.users.Update(ctx, id, fields)
}

func (s *AuthService) SetUserActive(ctx context.Context, id string, active bool) error {
	return s.users.SetActive(ctx, id, active)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// RevealPassword decrypts the stored password copy. Callers are expected to
// audit-log the reveal with actor context.
func (s *AuthService) RevealPassword(ctx context.Context, userID string) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return s.box.Decrypt(user.PasswordEnc)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
