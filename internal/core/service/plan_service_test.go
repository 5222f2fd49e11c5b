package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
)

func TestPlanService_Deactivate_BlockedWhileInUse(t *testing.T) {
	plans := &stubPlanRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Plan, error) {
			return &domain.Plan{ID: id, IsActive: true}, nil
		},
		updateFn: func(ctx context.Context, id string, fields map[string]any) (*domain.Plan, error) {
			t.Fatalf("a referenced plan must not be written")
			return nil, nil
		},
	}
	clients := &stubClientRepo{
		countByPlanFn: func(ctx context.Context, planID string) (int64, error) {
			return 2, nil
		},
	}

	svc := NewPlanService(plans, clients, zerolog.Nop())
	if err := svc.Deactivate(context.Background(), "plan_1"); !errors.Is(err, domain.ErrPlanInUse) {
		t.Fatalf("expected ErrPlanInUse, got %v", err)
	}
}

func TestPlanService_Deactivate_Unreferenced(t *testing.T) {
	var written map[string]any
	plans := &stubPlanRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Plan, error) {
			return &domain.Plan{ID: id, IsActive: true}, nil
		},
		updateFn: func(ctx context.Context, id string, fields map[string]any) (*domain.Plan, error) {
			written = fields
			return &domain.Plan{ID: id, IsActive: false}, nil
		},
	}
	clients := &stubClientRepo{
		countByPlanFn: func(ctx context.Context, planID string) (int64, error) {
			return 0, nil
		},
	}

	svc := NewPlanService(plans, clients, zerolog.Nop())
	if err := svc.Deactivate(context.Background(), "plan_1"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if written["isActive"] != false {
		t.Fatalf("expected isActive=false write, got %+v", written)
	}
}

func TestPlanService_Deactivate_UnknownPlan(t *testing.T) {
	plans := &stubPlanRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Plan, error) {
			return nil, domain.ErrPlanNotFound
		},
	}

	svc := NewPlanService(plans, &stubClientRepo{}, zerolog.Nop())
	if err := svc.Deactivate(context.Background(), "missing"); !errors.Is(err, domain.ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound, got %v", err)
	}
}
