package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

type stubAssignmentService struct {
	assignFn       func(ctx context.Context, sdrID, clientID string, licenseIDs []string) (*domain.Assignment, error)
	getFn          func(ctx context.Context, id string) (*domain.Assignment, error)
	listBySdrFn    func(ctx context.Context, sdrID string) ([]*domain.Assignment, error)
	listByClientFn func(ctx context.Context, clientID string) ([]*domain.Assignment, error)
	setLicensesFn  func(ctx context.Context, id string, licenseIDs []string) error
	setChatFn      func(ctx context.Context, sdrID, clientID, chat string) error
	removeFn       func(ctx context.Context, id string) error
}

func (s *stubAssignmentService) Assign(ctx context.Context, sdrID, clientID string, licenseIDs []string) (*domain.Assignment, error) {
	return s.assignFn(ctx, sdrID, clientID, licenseIDs)
}

func (s *stubAssignmentService) Get(ctx context.Context, id string) (*domain.Assignment, error) {
	return s.getFn(ctx, id)
}

func (s *stubAssignmentService) ListBySdr(ctx context.Context, sdrID string) ([]*domain.Assignment, error) {
	return s.listBySdrFn(ctx, sdrID)
}

func (s *stubAssignmentService) ListByClient(ctx context.Context, clientID string) ([]*domain.Assignment, error) {
	return s.listByClientFn(ctx, clientID)
}

func (s *stubAssignmentService) SetLicenses(ctx context.Context, id string, licenseIDs []string) error {
	return s.setLicensesFn(ctx, id, licenseIDs)
}

func (s *stubAssignmentService) SetChat(ctx context.Context, sdrID, clientID, chat string) error {
	return s.setChatFn(ctx, sdrID, clientID, chat)
}

func (s *stubAssignmentService) Remove(ctx context.Context, id string) error {
	return s.removeFn(ctx, id)
}

type stubLicenseService struct {
	listByClientFn func(ctx context.Context, clientID string) ([]*domain.License, error)
	listByIDsFn    func(ctx context.Context, ids []string) ([]*domain.License, error)
	generateFn     func(ctx context.Context, clientID string, targetLicenses int) (*ports.GenerateLicensesResult, error)
	setStatusFn    func(ctx context.Context, id string) error
	deleteFn       func(ctx context.Context, id string) error
}

func (s *stubLicenseService) ListByClient(ctx context.Context, clientID string) ([]*domain.License, error) {
	return s.listByClientFn(ctx, clientID)
}

func (s *stubLicenseService) ListByIDs(ctx context.Context, ids []string) ([]*domain.License, error) {
	return s.listByIDsFn(ctx, ids)
}

func (s *stubLicenseService) Generate(ctx context.Context, clientID string, targetLicenses int) (*ports.GenerateLicensesResult, error) {
	return s.generateFn(ctx, clientID, targetLicenses)
}

func (s *stubLicenseService) Pause(ctx context.Context, id string) error {
	return s.setStatusFn(ctx, id)
}

func (s *stubLicenseService) Resume(ctx context.Context, id string) error {
	return s.setStatusFn(ctx, id)
}

func (s *stubLicenseService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func newSdrContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "sdr_1")
	c.Set("role", domain.RoleSDR)
	return c, rec
}

func TestSdrHandler_ClientLicenses_ReturnsAssignmentSubset(t *testing.T) {
	assignments := &stubAssignmentService{
		listBySdrFn: func(ctx context.Context, sdrID string) ([]*domain.Assignment, error) {
			return []*domain.Assignment{
				{ID: "as_1", SdrID: sdrID, ClientID: "client_1", LicenseIDs: []string{"lic_1", "lic_3"}},
			}, nil
		},
	}
	licenses := &stubLicenseService{
		listByIDsFn: func(ctx context.Context, ids []string) ([]*domain.License, error) {
			if len(ids) != 2 || ids[0] != "lic_1" || ids[1] != "lic_3" {
				t.Fatalf("expected the assignment's license ids, got %v", ids)
			}
			out := make([]*domain.License, len(ids))
			for i, id := range ids {
				out[i] = &domain.License{ID: id, ClientID: "client_1"}
			}
			return out, nil
		},
	}
	h := NewSdrHandler(assignments, nil, licenses, nil, nil, anyRef)

	c, rec := newSdrContext(t, http.MethodGet, "/sdr/clients/client_1/licenses", "")
	c.SetParamNames("id")
	c.SetParamValues("client_1")

	if err := h.ClientLicenses(c); err != nil {
		t.Fatalf("client licenses: %v", err)
	}

	var got []domain.License
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 licenses, got %d", len(got))
	}
}

func TestSdrHandler_ClientLicenses_ForbiddenWhenUnassigned(t *testing.T) {
	assignments := &stubAssignmentService{
		listBySdrFn: func(ctx context.Context, sdrID string) ([]*domain.Assignment, error) {
			return nil, nil
		},
	}
	h := NewSdrHandler(assignments, nil, &stubLicenseService{}, nil, nil, anyRef)

	c, _ := newSdrContext(t, http.MethodGet, "/sdr/clients/client_9/licenses", "")
	c.SetParamNames("id")
	c.SetParamValues("client_9")

	if err := h.ClientLicenses(c); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSdrHandler_CreateUpdate_UsesPathClient(t *testing.T) {
	updates := &stubUpdateService{
		createFn: func(ctx context.Context, input ports.CreateUpdateInput) (*domain.Update, error) {
			if input.ClientID != "client_1" {
				t.Fatalf("expected client id from the path, got %q", input.ClientID)
			}
			if input.SdrID != "sdr_1" {
				t.Fatalf("expected sdr id from the claims, got %q", input.SdrID)
			}
			return &domain.Update{ID: "up_1", SdrID: input.SdrID, ClientID: input.ClientID, Title: input.Title}, nil
		},
	}
	h := NewSdrHandler(&stubAssignmentService{}, nil, nil, updates, nil, anyRef)

	c, rec := newSdrContext(t, http.MethodPost, "/sdr/clients/client_1/updates",
		`{"type":"call","title":"Intro call booked","visibleToClient":true}`)
	c.SetParamNames("id")
	c.SetParamValues("client_1")

	if err := h.CreateUpdate(c); err != nil {
		t.Fatalf("create update: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestSdrHandler_CreateUpdate_RejectsUnknownType(t *testing.T) {
	updates := &stubUpdateService{
		createFn: func(ctx context.Context, input ports.CreateUpdateInput) (*domain.Update, error) {
			t.Fatalf("service must not be called for an invalid type")
			return nil, nil
		},
	}
	h := NewSdrHandler(&stubAssignmentService{}, nil, nil, updates, nil, anyRef)

	c, _ := newSdrContext(t, http.MethodPost, "/sdr/clients/client_1/updates",
		`{"type":"carrier-pigeon","title":"x"}`)
	c.SetParamNames("id")
	c.SetParamValues("client_1")

	err := h.CreateUpdate(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
