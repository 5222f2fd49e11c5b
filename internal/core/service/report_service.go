package service

import (
	"context"
	"time"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// ReportService implements metric report management.
type ReportService struct {
	reports  ports.ReportRepository
	clients  ports.ClientRepository
	licenses ports.LicenseRepository
}

func NewReportService(reports ports.ReportRepository, clients ports.ClientRepository, licenses ports.LicenseRepository) *ReportService {
	return &ReportService{reports: reports, clients: clients, licenses: licenses}
}

func (s *ReportService) Create(ctx context.Context, r *domain.Report) (*domain.Report, error) {
	if r.PeriodEnd.Before(r.PeriodStart) {
		return nil, domain.ErrValidation
	}
	if _, err := s.clients.FindByID(ctx, r.ClientID); err != nil {
		return nil, err
	}
	if r.LicenseID != "" {
		lic, err := s.licenses.FindByID(ctx, r.LicenseID)
		if err != nil {
			return nil, err
		}
		if lic.ClientID != r.ClientID {
			return nil, domain.ErrValidation
		}
	}

	r.CreatedAt = time.Now().UTC()
	return s.reports.Create(ctx, r)
}

func (s *ReportService) Get(ctx context.Context, id string) (*domain.Report, error) {
	return s.reports.FindByID(ctx, id)
}

func (s *ReportService) ListByClient(ctx context.Context, clientID string) ([]*domain.Report, error) {
	return s.reports.ListByClient(ctx, clientID)
}
