package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// PlanService implements pricing plan management.
type PlanService struct {
	plans   ports.PlanRepository
	clients ports.ClientRepository
	log     zerolog.Logger
}

func NewPlanService(plans ports.PlanRepository, clients ports.ClientRepository, log zerolog.Logger) *PlanService {
	return &PlanService{plans: plans, clients: clients, log: log}
}

func (s *PlanService) Create(ctx context.Context, plan *domain.Plan) (*domain.Plan, error) {
	if plan.Name == "" || plan.PricePerLicense < 0 {
		return nil, domain.ErrValidation
	}
	switch plan.BillingPeriod {
	case domain.BillingMonthly, domain.BillingQuarterly, domain.BillingYearly:
	default:
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	plan.IsActive = true
	plan.CreatedAt = now
	plan.UpdatedAt = now
	return s.plans.Create(ctx, plan)
}

func (s *PlanService) Get(ctx context.Context, id string) (*domain.Plan, error) {
	return s.plans.FindByID(ctx, id)
}

func (s *PlanService) List(ctx context.Context) ([]*domain.Plan, error) {
	return s.plans.List(ctx)
}

func (s *PlanService) Update(ctx context.Context, id string, patch ports.PlanPatch) (*domain.Plan, error) {
	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.PricePerLicense != nil {
		if *patch.PricePerLicense < 0 {
			return nil, domain.ErrValidation
		}
		fields["pricePerLicense"] = *patch.PricePerLicense
	}
	if patch.Currency != nil {
		fields["currency"] = *patch.Currency
	}
	if patch.BillingPeriod != nil {
		switch *patch.BillingPeriod {
		case domain.BillingMonthly, domain.BillingQuarterly, domain.BillingYearly:
		default:
			return nil, domain.ErrValidation
		}
		fields["billingPeriod"] = *patch.BillingPeriod
	}
	if len(fields) == 0 {
		return s.plans.FindByID(ctx, id)
	}
	fields["updatedAt"] = time.Now().UTC()

	return s.plans.Update(ctx, id, fields)
}

// Deactivate refuses while any client still references the plan, leaving
// the plan untouched.
func (s *PlanService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.plans.FindByID(ctx, id); err != nil {
		return err
	}
	n, err := s.clients.CountByPlan(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrPlanInUse
	}

	_, err = s.plans.Update(ctx, id, map[string]any{"isActive": false, "updatedAt": time.Now().UTC()})
	if err == nil {
		s.log.Info().Str("plan_id", id).Msg("plan deactivated")
	}
	return err
}

func (s *PlanService) Activate(ctx context.Context, id string) error {
	_, err := s.plans.Update(ctx, id, map[string]any{"isActive": true, "updatedAt": time.Now().UTC()})
	return err
}
