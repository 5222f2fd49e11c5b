package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// ClientService implements client account management and roster export.
type ClientService struct {
	clients ports.ClientRepository
	plans   ports.PlanRepository
	log     zerolog.Logger
}

func NewClientService(clients ports.ClientRepository, plans ports.PlanRepository, log zerolog.Logger) *ClientService {
	return &ClientService{clients: clients, plans: plans, log: log}
}

func (s *ClientService) Create(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	if input.BusinessName == "" || input.ContactEmail == "" {
		return nil, domain.ErrValidation
	}
	if input.PlanID != "" {
		if _, err := s.plans.FindByID(ctx, input.PlanID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	client := &domain.Client{
		BusinessName:    input.BusinessName,
		ContactName:     input.ContactName,
		ContactEmail:    normalizeEmail(input.ContactEmail),
		ContactPhone:    input.ContactPhone,
		PlanID:          input.PlanID,
		LicenseCount:    input.LicenseCount,
		PricePerLicense: input.PricePerLicense,
		Currency:        input.Currency,
		PaymentStatus:   domain.PaymentCurrent,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.clients.Create(ctx, client)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("client_id", created.ID).Str("business", created.BusinessName).Msg("client created")
	return created, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.FindByID(ctx, id)
}

func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	return s.clients.List(ctx)
}

func (s *ClientService) Update(ctx context.Context, id string, patch ports.ClientPatch) (*domain.Client, error) {
	fields := map[string]any{}
	if patch.BusinessName != nil {
		fields["businessName"] = *patch.BusinessName
	}
	if patch.ContactName != nil {
		fields["contactName"] = *patch.ContactName
	}
	if patch.ContactEmail != nil {
		fields["contactEmail"] = normalizeEmail(*patch.ContactEmail)
	}
	if patch.ContactPhone != nil {
		fields["contactPhone"] = *patch.ContactPhone
	}
	if patch.PlanID != nil {
		if *patch.PlanID != "" {
			if _, err := s.plans.FindByID(ctx, *patch.PlanID); err != nil {
				return nil, err
			}
		}
		fields["planId"] = *patch.PlanID
	}
	if patch.LicenseCount != nil {
		if *patch.LicenseCount < 0 {
			return nil, domain.ErrValidation
		}
		fields["licenseCount"] = *patch.LicenseCount
	}
	if patch.PricePerLicense != nil {
		fields["pricePerLicense"] = *patch.PricePerLicense
	}
	if patch.Currency != nil {
		fields["currency"] = *patch.Currency
	}
	if patch.PaymentStatus != nil {
		switch *patch.PaymentStatus {
		case domain.PaymentCurrent, domain.PaymentPending, domain.PaymentOverdue:
		default:
			return nil, domain.ErrValidation
		}
		fields["paymentStatus"] = *patch.PaymentStatus
	}
	if patch.IsActive != nil {
		fields["isActive"] = *patch.IsActive
	}
	if len(fields) == 0 {
		return s.clients.FindByID(ctx, id)
	}
	fields["updatedAt"] = time.Now().UTC()

	return s.clients.Update(ctx, id, fields)
}

// ExportRoster renders the client roster as CSV or JSON bytes.
func (s *ClientService) ExportRoster(ctx context.Context, format string) ([]byte, string, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, "", err
	}

	switch format {
	case "json":
		data, err := json.Marshal(clients)
		if err != nil {
			return nil, "", err
		}
		return data, "application/json", nil
	case "csv", "":
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		_ = w.Write([]string{"id", "businessName", "contactName", "contactEmail", "planId", "licenseCount", "pricePerLicense", "currency", "paymentStatus", "isActive"})
		for _, c := range clients {
			_ = w.Write([]string{
				c.ID,
				c.BusinessName,
				c.ContactName,
				c.ContactEmail,
				c.PlanID,
				fmt.Sprintf("%d", c.LicenseCount),
				fmt.Sprintf("%.2f", c.PricePerLicense),
				c.Currency,
				string(c.PaymentStatus),
				fmt.Sprintf("%t", c.IsActive),
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "text/csv", nil
	default:
		return nil, "", fmt.Errorf("%w: unsupported export format %q", domain.ErrValidation, format)
	}
}
