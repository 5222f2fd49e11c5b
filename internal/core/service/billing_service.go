package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// BillingService assembles the month view consumed by the dashboard
// billing calendar.
type BillingService struct {
	invoices ports.InvoiceRepository
	cache    ports.CalendarCache
	log      zerolog.Logger
}

func NewBillingService(invoices ports.InvoiceRepository, cache ports.CalendarCache, log zerolog.Logger) *BillingService {
	return &BillingService{invoices: invoices, cache: cache, log: log}
}

// Calendar groups the month's invoices by day-of-month. Placement uses the
// explicit invoiceDate when present, otherwise the creation timestamp, and
// totalPaid sums PAID invoices only.
func (s *BillingService) Calendar(ctx context.Context, year, month int) (*ports.BillingCalendar, error) {
	if month < 1 || month > 12 || year < 2000 {
		return nil, domain.ErrValidation
	}

	if s.cache != nil {
		if cal, ok := s.cache.Get(ctx, year, month); ok {
			return cal, nil
		}
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	invoices, err := s.invoices.ListByPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	cal := &ports.BillingCalendar{
		Year:  year,
		Month: month,
		Days:  make(map[string]ports.CalendarDay),
	}
	for _, inv := range invoices {
		day := strconv.Itoa(inv.EffectiveDate().UTC().Day())
		cal.Days[day] = append(cal.Days[day], inv)
		cal.TotalInvoices++
		if inv.Status == domain.InvoicePaid {
			cal.TotalPaid += inv.Amount
		}
	}

	if s.cache != nil {
		s.cache.Set(ctx, cal)
	}
	return cal, nil
}
