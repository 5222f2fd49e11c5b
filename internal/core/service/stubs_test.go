package service

import (
	"context"
	"time"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// Shared hand-rolled stubs for the service tests. Only the function fields
// a test sets are expected to be called; anything else panics via the nil
// function, which flags the unexpected call immediately.

type stubClientRepo struct {
	createFn      func(ctx context.Context, client *domain.Client) (*domain.Client, error)
	findByIDFn    func(ctx context.Context, id string) (*domain.Client, error)
	listFn        func(ctx context.Context) ([]*domain.Client, error)
	updateFn      func(ctx context.Context, id string, fields map[string]any) (*domain.Client, error)
	countByPlanFn func(ctx context.Context, planID string) (int64, error)
}

func (s *stubClientRepo) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	return s.createFn(ctx, client)
}

func (s *stubClientRepo) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubClientRepo) List(ctx context.Context) ([]*domain.Client, error) {
	return s.listFn(ctx)
}

func (s *stubClientRepo) Update(ctx context.Context, id string, fields map[string]any) (*domain.Client, error) {
	return s.updateFn(ctx, id, fields)
}

func (s *stubClientRepo) CountByPlan(ctx context.Context, planID string) (int64, error) {
	return s.countByPlanFn(ctx, planID)
}

type stubPlanRepo struct {
	createFn   func(ctx context.Context, plan *domain.Plan) (*domain.Plan, error)
	findByIDFn func(ctx context.Context, id string) (*domain.Plan, error)
	listFn     func(ctx context.Context) ([]*domain.Plan, error)
	updateFn   func(ctx context.Context, id string, fields map[string]any) (*domain.Plan, error)
}

func (s *stubPlanRepo) Create(ctx context.Context, plan *domain.Plan) (*domain.Plan, error) {
	return s.createFn(ctx, plan)
}

func (s *stubPlanRepo) FindByID(ctx context.Context, id string) (*domain.Plan, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubPlanRepo) List(ctx context.Context) ([]*domain.Plan, error) {
	return s.listFn(ctx)
}

func (s *stubPlanRepo) Update(ctx context.Context, id string, fields map[string]any) (*domain.Plan, error) {
	return s.updateFn(ctx, id, fields)
}

type stubLicenseRepo struct {
	createManyFn    func(ctx context.Context, licenses []*domain.License) ([]*domain.License, error)
	findByIDFn      func(ctx context.Context, id string) (*domain.License, error)
	listByClientFn  func(ctx context.Context, clientID string) ([]*domain.License, error)
	listByIDsFn     func(ctx context.Context, ids []string) ([]*domain.License, error)
	countByClientFn func(ctx context.Context, clientID string) (int64, error)
	setStatusFn     func(ctx context.Context, id string, status domain.LicenseStatus) error
	deleteFn        func(ctx context.Context, id string) error
}

func (s *stubLicenseRepo) CreateMany(ctx context.Context, licenses []*domain.License) ([]*domain.License, error) {
	return s.createManyFn(ctx, licenses)
}

func (s *stubLicenseRepo) FindByID(ctx context.Context, id string) (*domain.License, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubLicenseRepo) ListByClient(ctx context.Context, clientID string) ([]*domain.License, error) {
	return s.listByClientFn(ctx, clientID)
}

func (s *stubLicenseRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.License, error) {
	return s.listByIDsFn(ctx, ids)
}

func (s *stubLicenseRepo) CountByClient(ctx context.Context, clientID string) (int64, error) {
	return s.countByClientFn(ctx, clientID)
}

func (s *stubLicenseRepo) SetStatus(ctx context.Context, id string, status domain.LicenseStatus) error {
	return s.setStatusFn(ctx, id, status)
}

func (s *stubLicenseRepo) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubAssignmentRepo struct {
	createFn             func(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error)
	findByIDFn           func(ctx context.Context, id string) (*domain.Assignment, error)
	findBySdrAndClientFn func(ctx context.Context, sdrID, clientID string) (*domain.Assignment, error)
	listBySdrFn          func(ctx context.Context, sdrID string) ([]*domain.Assignment, error)
	listByClientFn       func(ctx context.Context, clientID string) ([]*domain.Assignment, error)
	setLicenseIDsFn      func(ctx context.Context, id string, licenseIDs []string) error
	addLicenseIDsFn      func(ctx context.Context, clientID string, licenseIDs []string) error
	setChatHistoryFn     func(ctx context.Context, id string, chat string) error
	deleteFn             func(ctx context.Context, id string) error
}

func (s *stubAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error) {
	return s.createFn(ctx, a)
}

func (s *stubAssignmentRepo) FindByID(ctx context.Context, id string) (*domain.Assignment, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubAssignmentRepo) FindBySdrAndClient(ctx context.Context, sdrID, clientID string) (*domain.Assignment, error) {
	return s.findBySdrAndClientFn(ctx, sdrID, clientID)
}

func (s *stubAssignmentRepo) ListBySdr(ctx context.Context, sdrID string) ([]*domain.Assignment, error) {
	return s.listBySdrFn(ctx, sdrID)
}

func (s *stubAssignmentRepo) ListByClient(ctx context.Context, clientID string) ([]*domain.Assignment, error) {
	return s.listByClientFn(ctx, clientID)
}

func (s *stubAssignmentRepo) SetLicenseIDs(ctx context.Context, id string, licenseIDs []string) error {
	return s.setLicenseIDsFn(ctx, id, licenseIDs)
}

func (s *stubAssignmentRepo) AddLicenseIDs(ctx context.Context, clientID string, licenseIDs []string) error {
	return s.addLicenseIDsFn(ctx, clientID, licenseIDs)
}

func (s *stubAssignmentRepo) SetChatHistory(ctx context.Context, id string, chat string) error {
	return s.setChatHistoryFn(ctx, id, chat)
}

func (s *stubAssignmentRepo) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubInvoiceRepo struct {
	createFn            func(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	findByIDFn          func(ctx context.Context, id string) (*domain.Invoice, error)
	findByIDForClientFn func(ctx context.Context, id, clientID string) (*domain.Invoice, error)
	listByClientFn      func(ctx context.Context, clientID string) ([]*domain.Invoice, error)
	listByIDsFn         func(ctx context.Context, ids []string) ([]*domain.Invoice, error)
	listByPeriodFn      func(ctx context.Context, from, to time.Time) ([]*domain.Invoice, error)
	updateFn            func(ctx context.Context, id string, fields map[string]any) (*domain.Invoice, error)
	bulkMarkPaidFn      func(ctx context.Context, ids []string, paidAt time.Time) (int64, error)
}

func (s *stubInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	return s.createFn(ctx, inv)
}

func (s *stubInvoiceRepo) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubInvoiceRepo) FindByIDForClient(ctx context.Context, id, clientID string) (*domain.Invoice, error) {
	return s.findByIDForClientFn(ctx, id, clientID)
}

func (s *stubInvoiceRepo) ListByClient(ctx context.Context, clientID string) ([]*domain.Invoice, error) {
	return s.listByClientFn(ctx, clientID)
}

func (s *stubInvoiceRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.Invoice, error) {
	return s.listByIDsFn(ctx, ids)
}

func (s *stubInvoiceRepo) ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.Invoice, error) {
	return s.listByPeriodFn(ctx, from, to)
}

func (s *stubInvoiceRepo) Update(ctx context.Context, id string, fields map[string]any) (*domain.Invoice, error) {
	return s.updateFn(ctx, id, fields)
}

func (s *stubInvoiceRepo) BulkMarkPaid(ctx context.Context, ids []string, paidAt time.Time) (int64, error) {
	return s.bulkMarkPaidFn(ctx, ids, paidAt)
}

// stubCalendarCache records calendar cache traffic in memory.
type stubCalendarCache struct {
	entries     map[string]*ports.BillingCalendar
	invalidated []string
}

func newStubCalendarCache() *stubCalendarCache {
	return &stubCalendarCache{entries: make(map[string]*ports.BillingCalendar)}
}

func cacheKey(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

func (s *stubCalendarCache) Get(ctx context.Context, year, month int) (*ports.BillingCalendar, bool) {
	cal, ok := s.entries[cacheKey(year, month)]
	return cal, ok
}

func (s *stubCalendarCache) Set(ctx context.Context, cal *ports.BillingCalendar) {
	s.entries[cacheKey(cal.Year, cal.Month)] = cal
}

func (s *stubCalendarCache) Invalidate(ctx context.Context, year, month int) {
	key := cacheKey(year, month)
	delete(s.entries, key)
	s.invalidated = append(s.invalidated, key)
}
