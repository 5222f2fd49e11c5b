package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// hexRef mimics the document reference check without the mongo driver.
func hexRef(id string) bool {
	if len(id) != 24 {
		return false
	}
	return strings.Trim(id, "0123456789abcdef") == ""
}

func testRef(n byte) string {
	return strings.Repeat(string([]byte{'a' + n%6}), 24)
}

func newTestInvoiceService(invoices ports.InvoiceRepository, clients ports.ClientRepository) *InvoiceService {
	return NewInvoiceService(invoices, clients, nil, newStubCalendarCache(), hexRef, zerolog.Nop())
}

func TestInvoiceService_Create_ValidatesPeriod(t *testing.T) {
	svc := newTestInvoiceService(&stubInvoiceRepo{}, &stubClientRepo{})

	bad := []ports.CreateInvoiceInput{
		{ClientID: "client_1", Month: 0, Year: 2026},
		{ClientID: "client_1", Month: 13, Year: 2026},
		{ClientID: "client_1", Month: 6, Year: 1999},
		{ClientID: "client_1", Month: 6, Year: 2026, Amount: -5},
	}
	for _, input := range bad {
		if _, err := svc.Create(context.Background(), input); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation for %+v, got %v", input, err)
		}
	}
}

func TestInvoiceService_Create_DescriptionDefaultsToService(t *testing.T) {
	clients := &stubClientRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Client, error) {
			return &domain.Client{ID: id}, nil
		},
	}
	invoices := &stubInvoiceRepo{
		createFn: func(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
			if inv.Description != "SDR outreach" {
				t.Fatalf("expected description to default to the service type, got %q", inv.Description)
			}
			if inv.Status != domain.InvoiceGenerated {
				t.Fatalf("new invoices must start GENERATED, got %q", inv.Status)
			}
			inv.ID = testRef(0)
			return inv, nil
		},
	}

	svc := newTestInvoiceService(invoices, clients)
	if _, err := svc.Create(context.Background(), ports.CreateInvoiceInput{
		ClientID:      "client_1",
		Month:         3,
		Year:          2026,
		Amount:        1200,
		TypeOfService: "SDR outreach",
		DueDate:       time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestInvoiceService_MarkPaid_SecondCallFails(t *testing.T) {
	paidAt := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	stored := &domain.Invoice{
		ID:     testRef(0),
		Status: domain.InvoicePaid,
		PaidAt: &paidAt,
	}
	invoices := &stubInvoiceRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Invoice, error) {
			return stored, nil
		},
		updateFn: func(ctx context.Context, id string, fields map[string]any) (*domain.Invoice, error) {
			t.Fatalf("a paid invoice must not be written again")
			return nil, nil
		},
	}

	svc := newTestInvoiceService(invoices, &stubClientRepo{})
	_, err := svc.MarkPaid(context.Background(), stored.ID, nil)
	if !errors.Is(err, domain.ErrInvoiceAlreadyPaid) {
		t.Fatalf("expected ErrInvoiceAlreadyPaid, got %v", err)
	}
	if !stored.PaidAt.Equal(paidAt) {
		t.Fatalf("paidAt must be untouched, got %v", stored.PaidAt)
	}
}

func TestInvoiceService_MarkPaid_UsesCallerTimestamp(t *testing.T) {
	when := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	invoices := &stubInvoiceRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Invoice, error) {
			return &domain.Invoice{ID: id, Status: domain.InvoiceGenerated}, nil
		},
		updateFn: func(ctx context.Context, id string, fields map[string]any) (*domain.Invoice, error) {
			if fields["status"] != domain.InvoicePaid {
				t.Fatalf("expected status PAID, got %v", fields["status"])
			}
			got, ok := fields["paidAt"].(time.Time)
			if !ok || !got.Equal(when) {
				t.Fatalf("expected paidAt %v, got %v", when, fields["paidAt"])
			}
			return &domain.Invoice{ID: id, Status: domain.InvoicePaid, PaidAt: &got}, nil
		},
	}

	svc := newTestInvoiceService(invoices, &stubClientRepo{})
	if _, err := svc.MarkPaid(context.Background(), testRef(0), &when); err != nil {
		t.Fatalf("mark paid: %v", err)
	}
}

func TestInvoiceService_BulkMarkPaid_FiltersMalformedIDs(t *testing.T) {
	var requested []string
	invoices := &stubInvoiceRepo{
		bulkMarkPaidFn: func(ctx context.Context, ids []string, paidAt time.Time) (int64, error) {
			requested = ids
			// One of the two valid invoices was already PAID.
			return 1, nil
		},
		listByIDsFn: func(ctx context.Context, ids []string) ([]*domain.Invoice, error) {
			return nil, nil
		},
	}

	svc := newTestInvoiceService(invoices, &stubClientRepo{})
	result, err := svc.BulkMarkPaid(context.Background(), []string{testRef(0), "not-a-ref", testRef(1)}, nil)
	if err != nil {
		t.Fatalf("bulk mark paid: %v", err)
	}

	if result.Requested != 3 {
		t.Fatalf("expected 3 requested, got %d", result.Requested)
	}
	if result.ValidIDs != 2 || len(requested) != 2 {
		t.Fatalf("expected 2 valid ids to reach the repository, got %d", len(requested))
	}
	if result.ModifiedCount != 1 {
		t.Fatalf("expected modifiedCount 1, got %d", result.ModifiedCount)
	}
}

func TestInvoiceService_BulkMarkPaid_NothingValid(t *testing.T) {
	invoices := &stubInvoiceRepo{
		bulkMarkPaidFn: func(ctx context.Context, ids []string, paidAt time.Time) (int64, error) {
			t.Fatalf("repository must not be called with an empty id list")
			return 0, nil
		},
	}

	svc := newTestInvoiceService(invoices, &stubClientRepo{})
	result, err := svc.BulkMarkPaid(context.Background(), []string{"nope", "also-nope"}, nil)
	if err != nil {
		t.Fatalf("bulk mark paid: %v", err)
	}
	if result.ValidIDs != 0 || result.ModifiedCount != 0 {
		t.Fatalf("expected zero result, got %+v", result)
	}
}

func TestInvoiceService_BulkMarkPaid_InvalidatesAffectedMonths(t *testing.T) {
	march := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	may := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	invoices := &stubInvoiceRepo{
		bulkMarkPaidFn: func(ctx context.Context, ids []string, paidAt time.Time) (int64, error) {
			return 2, nil
		},
		listByIDsFn: func(ctx context.Context, ids []string) ([]*domain.Invoice, error) {
			return []*domain.Invoice{
				{ID: testRef(0), Status: domain.InvoicePaid, InvoiceDate: &march},
				{ID: testRef(1), Status: domain.InvoicePaid, InvoiceDate: &may},
			}, nil
		},
	}

	cache := newStubCalendarCache()
	cache.Set(context.Background(), &ports.BillingCalendar{Year: 2026, Month: 3})
	cache.Set(context.Background(), &ports.BillingCalendar{Year: 2026, Month: 5})
	cache.Set(context.Background(), &ports.BillingCalendar{Year: 2026, Month: 9})

	svc := NewInvoiceService(invoices, &stubClientRepo{}, nil, cache, hexRef, zerolog.Nop())
	if _, err := svc.BulkMarkPaid(context.Background(), []string{testRef(0), testRef(1)}, nil); err != nil {
		t.Fatalf("bulk mark paid: %v", err)
	}

	if _, ok := cache.Get(context.Background(), 2026, 3); ok {
		t.Fatalf("March 2026 calendar must be dropped after paying a March invoice")
	}
	if _, ok := cache.Get(context.Background(), 2026, 5); ok {
		t.Fatalf("May 2026 calendar must be dropped after paying a May invoice")
	}
	if _, ok := cache.Get(context.Background(), 2026, 9); !ok {
		t.Fatalf("untouched months must stay cached")
	}
}

func TestInvoiceService_Update_RejectsReopeningPaid(t *testing.T) {
	invoices := &stubInvoiceRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.Invoice, error) {
			return &domain.Invoice{ID: id, Status: domain.InvoicePaid}, nil
		},
	}

	svc := newTestInvoiceService(invoices, &stubClientRepo{})
	status := domain.InvoiceGenerated
	_, err := svc.Update(context.Background(), testRef(0), ports.InvoicePatch{Status: &status})
	if !errors.Is(err, domain.ErrInvalidInvoiceStatus) {
		t.Fatalf("expected ErrInvalidInvoiceStatus, got %v", err)
	}
}
