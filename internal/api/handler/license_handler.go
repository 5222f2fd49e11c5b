package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salesbridge/dashboard-api/internal/api/metrics"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// LicenseHandler handles admin-side license management including
// auto-generation up to a client's target count.
type LicenseHandler struct {
	licenseService ports.LicenseService
	audit          ports.AuditSink
	validRef       RefValidator
}

func NewLicenseHandler(licenseService ports.LicenseService, audit ports.AuditSink, validRef RefValidator) *LicenseHandler {
	return &LicenseHandler{licenseService: licenseService, audit: audit, validRef: validRef}
}

type generateLicensesRequest struct {
	TargetLicenses int `json:"targetLicenses" validate:"gte=0"`
}

type generateLicensesResponse struct {
	Created  int `json:"created"`
	Existing int `json:"existing"`
	Total    int `json:"total"`
}

// ListByClient handles GET /admin/clients/:id/licenses.
func (h *LicenseHandler) ListByClient(c echo.Context) error {
	clientID, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	licenses, err := h.licenseService.ListByClient(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, licenses)
}

// Generate handles POST /admin/clients/:id/licenses/generate. It tops the
// client up to the requested target; a target at or below the current count
// creates nothing and succeeds.
func (h *LicenseHandler) Generate(c echo.Context) error {
	actorID, actorRole, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	clientID, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	var req generateLicensesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.licenseService.Generate(c.Request().Context(), clientID, req.TargetLicenses)
	if err != nil {
		return err
	}

	if len(result.Created) > 0 {
		metrics.LicensesGeneratedTotal.Add(float64(len(result.Created)))
		h.audit.Record(auditEntry(actorID, actorRole, "license.generate", "client", clientID, ""))
	}

	return c.JSON(http.StatusOK, generateLicensesResponse{
		Created:  len(result.Created),
		Existing: int(result.Existing),
		Total:    int(result.Existing) + len(result.Created),
	})
}

// Pause handles POST /admin/licenses/:id/pause.
func (h *LicenseHandler) Pause(c echo.Context) error {
	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	if err := h.licenseService.Pause(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Resume handles POST /admin/licenses/:id/resume.
func (h *LicenseHandler) Resume(c echo.Context) error {
	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	if err := h.licenseService.Resume(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Delete handles DELETE /admin/licenses/:id. Licenses are the only entity
// with a physical delete.
func (h *LicenseHandler) Delete(c echo.Context) error {
	actorID, actorRole, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	if err := h.licenseService.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	h.audit.Record(auditEntry(actorID, actorRole, "license.delete", "license", id, ""))

	return c.NoContent(http.StatusNoContent)
}
