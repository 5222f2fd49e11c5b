package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
)

func invoke(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/clients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error envelope: %v", err)
	}
	return rec.Code, body.Error
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation", fmt.Errorf("%w: month out of range", domain.ErrValidation), http.StatusBadRequest, "validation failed: month out of range"},
		{"already paid", domain.ErrInvoiceAlreadyPaid, http.StatusBadRequest, "invoice already paid"},
		{"plan in use", domain.ErrPlanInUse, http.StatusBadRequest, "plan is assigned to one or more clients"},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"bad token", domain.ErrTokenInvalid, http.StatusUnauthorized, "invalid or expired token"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"client missing", domain.ErrClientNotFound, http.StatusNotFound, "client not found"},
		{"invoice missing", domain.ErrInvoiceNotFound, http.StatusNotFound, "invoice not found"},
		{"duplicate user", domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{"duplicate assignment", domain.ErrAssignmentExists, http.StatusConflict, "sdr already assigned to this client"},
		{"registration off", domain.ErrFeatureDisabled, http.StatusGone, "registration is disabled"},
		{"unknown", errors.New("mongo: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := invoke(t, tc.err)
			if code != tc.wantCode {
				t.Fatalf("code = %d, want %d", code, tc.wantCode)
			}
			if msg != tc.wantMsg {
				t.Fatalf("message = %q, want %q", msg, tc.wantMsg)
			}
		})
	}
}

func TestHTTPErrorHandler_PassesThroughEchoErrors(t *testing.T) {
	code, msg := invoke(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest || msg != "invalid payload" {
		t.Fatalf("got %d %q", code, msg)
	}
}
