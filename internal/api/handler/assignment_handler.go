package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// AssignmentHandler handles admin-side SDR-client assignment management.
type AssignmentHandler struct {
	assignmentService ports.AssignmentService
	audit             ports.AuditSink
	validRef          RefValidator
}

func NewAssignmentHandler(assignmentService ports.AssignmentService, audit ports.AuditSink, validRef RefValidator) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService, audit: audit, validRef: validRef}
}

type createAssignmentRequest struct {
	SdrID      string   `json:"sdrId" validate:"required"`
	ClientID   string   `json:"clientId" validate:"required"`
	LicenseIDs []string `json:"licenseIds"`
}

type setLicensesRequest struct {
	LicenseIDs []string `json:"licenseIds" validate:"required"`
}

// Create handles POST /admin/assignments. The (sdr, client) pair is unique.
func (h *AssignmentHandler) Create(c echo.Context) error {
	actorID, actorRole, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !h.validRef(req.SdrID) || !h.validRef(req.ClientID) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid sdrId or clientId")
	}

	assignment, err := h.assignmentService.Assign(c.Request().Context(), req.SdrID, req.ClientID, req.LicenseIDs)
	if err != nil {
		return err
	}

	h.audit.Record(auditEntry(actorID, actorRole, "assignment.create", "assignment", assignment.ID,
		"sdr="+req.SdrID+" client="+req.ClientID))

	return c.JSON(http.StatusCreated, assignment)
}

// Get handles GET /admin/assignments/:id.
func (h *AssignmentHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	assignment, err := h.assignmentService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, assignment)
}

// ListBySdr handles GET /admin/sdrs/:id/assignments.
func (h *AssignmentHandler) ListBySdr(c echo.Context) error {
	sdrID, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	assignments, err := h.assignmentService.ListBySdr(c.Request().Context(), sdrID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, assignments)
}

// ListByClient handles GET /admin/clients/:id/assignments.
func (h *AssignmentHandler) ListByClient(c echo.Context) error {
	clientID, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	assignments, err := h.assignmentService.ListByClient(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, assignments)
}

// SetLicenses handles PUT /admin/assignments/:id/licenses and replaces the
// license subset the SDR works.
func (h *AssignmentHandler) SetLicenses(c echo.Context) error {
	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	var req setLicensesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.assignmentService.SetLicenses(c.Request().Context(), id, req.LicenseIDs); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Remove handles DELETE /admin/assignments/:id.
func (h *AssignmentHandler) Remove(c echo.Context) error {
	actorID, actorRole, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	if err := h.assignmentService.Remove(c.Request().Context(), id); err != nil {
		return err
	}

	h.audit.Record(auditEntry(actorID, actorRole, "assignment.remove", "assignment", id, ""))

	return c.NoContent(http.StatusNoContent)
}
