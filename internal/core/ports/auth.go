package ports

import (
	"context"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
)

// TokenClaims is the payload carried by a session token.
type TokenClaims struct {
	UserID   string
	Role     string
	ClientID string // set only for CLIENT-role users
}

// TokenService issues and verifies signed session tokens. Verification
// failures (bad signature, expiry) surface as domain.ErrTokenInvalid.
type TokenService interface {
	Issue(claims TokenClaims) (string, error)
	Verify(token string) (*TokenClaims, error)
}

// UserPatch carries the mutable user fields for partial updates; nil
// pointers leave the stored value untouched.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
	ClientID *string
}

// UserRepository persists credential records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.User, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// CreateUserInput carries everything needed to provision an account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	ClientID string
}

// AuthService implements login and admin-side account management.
type AuthService interface {
	// Login verifies credentials and returns a session token. Unknown email,
	// wrong password and disabled accounts are indistinguishable to callers.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	SetUserActive(ctx context.Context, id string, active bool) error
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	// RevealPassword decrypts the stored password copy for admin visibility.
	RevealPassword(ctx context.Context, userID string) (string, error)
}
