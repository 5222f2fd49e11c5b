package ports

import (
	"context"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
)

// ClientRepository persists client accounts.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Client, error)
	CountByPlan(ctx context.Context, planID string) (int64, error)
}

// PlanRepository persists pricing plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (*domain.Plan, error)
	FindByID(ctx context.Context, id string) (*domain.Plan, error)
	List(ctx context.Context) ([]*domain.Plan, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Plan, error)
}

// CreateClientInput carries the fields for a new client account.
type CreateClientInput struct {
	BusinessName    string
	ContactName     string
	ContactEmail    string
	ContactPhone    string
	PlanID          string
	LicenseCount    int
	PricePerLicense float64
	Currency        string
}

// ClientPatch carries mutable client fields for partial updates.
type ClientPatch struct {
	BusinessName    *string
	ContactName     *string
	ContactEmail    *string
	ContactPhone    *string
	PlanID          *string
	LicenseCount    *int
	PricePerLicense *float64
	Currency        *string
	PaymentStatus   *domain.PaymentStatus
	IsActive        *bool
}

// ClientService implements client account management and roster export.
type ClientService interface {
	Create(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, id string, patch ClientPatch) (*domain.Client, error)
	// ExportRoster renders the client roster as "csv" or "json" bytes with
	// the matching content type.
	ExportRoster(ctx context.Context, format string) ([]byte, string, error)
}

// PlanPatch carries mutable plan fields for partial updates.
type PlanPatch struct {
	Name            *string
	Description     *string
	PricePerLicense *float64
	Currency        *string
	BillingPeriod   *domain.BillingPeriod
}

// PlanService implements plan management. Deactivate refuses while any
// client still references the plan.
type PlanService interface {
	Create(ctx context.Context, plan *domain.Plan) (*domain.Plan, error)
	Get(ctx context.Context, id string) (*domain.Plan, error)
	List(ctx context.Context) ([]*domain.Plan, error)
	Update(ctx context.Context, id string, patch PlanPatch) (*domain.Plan, error)
	Deactivate(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error
}
