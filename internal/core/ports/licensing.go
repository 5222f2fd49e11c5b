package ports

import (
	"context"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
)

// LicenseRepository persists licenses.
type LicenseRepository interface {
	CreateMany(ctx context.Context, licenses []*domain.License) ([]*domain.License, error)
	FindByID(ctx context.Context, id string) (*domain.License, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.License, error)
	ListByIDs(ctx context.Context, ids []string) ([]*domain.License, error)
	CountByClient(ctx context.Context, clientID string) (int64, error)
	SetStatus(ctx context.Context, id string, status domain.LicenseStatus) error
	Delete(ctx context.Context, id string) error
}

// AssignmentRepository persists SDR-client assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error)
	FindByID(ctx context.Context, id string) (*domain.Assignment, error)
	FindBySdrAndClient(ctx context.Context, sdrID, clientID string) (*domain.Assignment, error)
	ListBySdr(ctx context.Context, sdrID string) ([]*domain.Assignment, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Assignment, error)
	SetLicenseIDs(ctx context.Context, id string, licenseIDs []string) error
	// AddLicenseIDs unions licenseIDs into every assignment of the client
	// without introducing duplicates.
	AddLicenseIDs(ctx context.Context, clientID string, licenseIDs []string) error
	SetChatHistory(ctx context.Context, id string, chat string) error
	Delete(ctx context.Context, id string) error
}

// GenerateLicensesResult reports the outcome of a license generation run.
type GenerateLicensesResult struct {
	Created  []*domain.License
	Existing int64
}

// LicenseService implements license management including auto-generation.
type LicenseService interface {
	ListByClient(ctx context.Context, clientID string) ([]*domain.License, error)
	// ListByIDs resolves an explicit license subset, e.g. the licenses an
	// SDR works under one assignment.
	ListByIDs(ctx context.Context, ids []string) ([]*domain.License, error)
	// Generate tops the client up to targetLicenses active licenses and adds
	// the new license ids to all of the client's SDR assignments. A target at
	// or below the current count creates nothing.
	Generate(ctx context.Context, clientID string, targetLicenses int) (*GenerateLicensesResult, error)
	Pause(ctx context.Context, id string) error
	Resume(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// AssignmentService implements SDR-client assignment management.
type AssignmentService interface {
	Assign(ctx context.Context, sdrID, clientID string, licenseIDs []string) (*domain.Assignment, error)
	Get(ctx context.Context, id string) (*domain.Assignment, error)
	ListBySdr(ctx context.Context, sdrID string) ([]*domain.Assignment, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Assignment, error)
	SetLicenses(ctx context.Context, id string, licenseIDs []string) error
	// SetChat replaces the chat history blob on the caller's assignment.
	SetChat(ctx context.Context, sdrID, clientID, chat string) error
	Remove(ctx context.Context, id string) error
}
