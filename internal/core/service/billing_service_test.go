package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

func TestBillingService_Calendar_GroupsByDay(t *testing.T) {
	invoiceDate := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	invoices := &stubInvoiceRepo{
		listByPeriodFn: func(ctx context.Context, from, to time.Time) ([]*domain.Invoice, error) {
			wantFrom := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
			if !from.Equal(wantFrom) || !to.Equal(wantFrom.AddDate(0, 1, 0)) {
				t.Fatalf("unexpected period [%v, %v)", from, to)
			}
			return []*domain.Invoice{
				{
					ID:          "inv_1",
					Status:      domain.InvoicePaid,
					Amount:      500,
					InvoiceDate: &invoiceDate,
					CreatedAt:   time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
				},
				{
					// No explicit invoice date; placement falls back to
					// the creation timestamp.
					ID:        "inv_2",
					Status:    domain.InvoiceGenerated,
					Amount:    750,
					CreatedAt: time.Date(2026, 2, 17, 8, 30, 0, 0, time.UTC),
				},
			}, nil
		},
	}

	svc := NewBillingService(invoices, newStubCalendarCache(), zerolog.Nop())
	cal, err := svc.Calendar(context.Background(), 2026, 2)
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}

	if cal.TotalInvoices != 2 {
		t.Fatalf("expected 2 invoices, got %d", cal.TotalInvoices)
	}
	if cal.TotalPaid != 500 {
		t.Fatalf("totalPaid must sum PAID invoices only, got %v", cal.TotalPaid)
	}
	if len(cal.Days["3"]) != 1 || cal.Days["3"][0].ID != "inv_1" {
		t.Fatalf("expected inv_1 on day 3, got %+v", cal.Days["3"])
	}
	if len(cal.Days["17"]) != 1 || cal.Days["17"][0].ID != "inv_2" {
		t.Fatalf("expected inv_2 on day 17, got %+v", cal.Days["17"])
	}
}

func TestBillingService_Calendar_ServesFromCache(t *testing.T) {
	cache := newStubCalendarCache()
	cached := &ports.BillingCalendar{Year: 2026, Month: 5, TotalInvoices: 9}
	cache.Set(context.Background(), cached)

	invoices := &stubInvoiceRepo{
		listByPeriodFn: func(ctx context.Context, from, to time.Time) ([]*domain.Invoice, error) {
			t.Fatalf("repository must not be hit on a cache hit")
			return nil, nil
		},
	}

	svc := NewBillingService(invoices, cache, zerolog.Nop())
	cal, err := svc.Calendar(context.Background(), 2026, 5)
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if cal.TotalInvoices != 9 {
		t.Fatalf("expected the cached calendar, got %+v", cal)
	}
}

func TestBillingService_Calendar_PopulatesCache(t *testing.T) {
	cache := newStubCalendarCache()
	invoices := &stubInvoiceRepo{
		listByPeriodFn: func(ctx context.Context, from, to time.Time) ([]*domain.Invoice, error) {
			return nil, nil
		},
	}

	svc := NewBillingService(invoices, cache, zerolog.Nop())
	if _, err := svc.Calendar(context.Background(), 2026, 7); err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if _, ok := cache.Get(context.Background(), 2026, 7); !ok {
		t.Fatalf("assembled calendar was not cached")
	}
}

func TestBillingService_Calendar_ValidatesInput(t *testing.T) {
	svc := NewBillingService(&stubInvoiceRepo{}, newStubCalendarCache(), zerolog.Nop())

	for _, tc := range []struct{ year, month int }{
		{2026, 0},
		{2026, 13},
		{1999, 6},
	} {
		if _, err := svc.Calendar(context.Background(), tc.year, tc.month); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation for %d-%d, got %v", tc.year, tc.month, err)
		}
	}
}
