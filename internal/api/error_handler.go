package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvoiceAlreadyPaid),
		errors.Is(err, domain.ErrInvalidInvoiceStatus),
		errors.Is(err, domain.ErrPlanInUse):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, "invalid or expired token"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrClientNotFound):
		return http.StatusNotFound, "client not found"
	case errors.Is(err, domain.ErrPlanNotFound):
		return http.StatusNotFound, "plan not found"
	case errors.Is(err, domain.ErrLicenseNotFound):
		return http.StatusNotFound, "license not found"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "invoice not found"
	case errors.Is(err, domain.ErrAssignmentNotFound):
		return http.StatusNotFound, "assignment not found"
	case errors.Is(err, domain.ErrUpdateNotFound):
		return http.StatusNotFound, "update not found"
	case errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound, "report not found"
	case errors.Is(err, domain.ErrNoteNotFound):
		return http.StatusNotFound, "note not found"
	case errors.Is(err, domain.ErrNotificationNotFound):
		return http.StatusNotFound, "notification not found"
	case errors.Is(err, domain.ErrContractNotFound):
		return http.StatusNotFound, "contract not found"
	case errors.Is(err, domain.ErrFileNotFound):
		return http.StatusNotFound, "file not found"
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrInvoiceExists),
		errors.Is(err, domain.ErrAssignmentExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrFeatureDisabled):
		return http.StatusGone, "registration is disabled"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
