package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// RecordsHandler handles the supporting records: admin notes, contracts and
// the audit trail.
type RecordsHandler struct {
	recordsService ports.RecordsService
	validRef       RefValidator
}

func NewRecordsHandler(recordsService ports.RecordsService, validRef RefValidator) *RecordsHandler {
	return &RecordsHandler{recordsService: recordsService, validRef: validRef}
}

type createNoteRequest struct {
	Body string `json:"body" validate:"required"`
}

type createContractRequest struct {
	ClientID  string     `json:"clientId" validate:"required"`
	Title     string     `json:"title" validate:"required"`
	StartDate time.Time  `json:"startDate" validate:"required"`
	EndDate   *time.Time `json:"endDate"`
	AutoRenew bool       `json:"autoRenew"`
}

type contractStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DRAFT ACTIVE EXPIRED"`
}

// CreateNote handles POST /admin/clients/:id/notes. Notes never surface in
// the client portal.
func (h *RecordsHandler) CreateNote(c echo.Context) error {
	adminID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	clientID, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.recordsService.CreateNote(c.Request().Context(), adminID, clientID, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, note)
}

// ListNotes handles GET /admin/clients/:id/notes.
func (h *RecordsHandler) ListNotes(c echo.Context) error {
	clientID, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	notes, err := h.recordsService.ListNotes(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notes)
}

// DeleteNote handles DELETE /admin/notes/:id.
func (h *RecordsHandler) DeleteNote(c echo.Context) error {
	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	if err := h.recordsService.DeleteNote(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateContract handles POST /admin/contracts. New contracts start in
// DRAFT.
func (h *RecordsHandler) CreateContract(c echo.Context) error {
	var req createContractRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !h.validRef(req.ClientID) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid clientId")
	}

	contract, err := h.recordsService.CreateContract(c.Request().Context(), &domain.Contract{
		ClientID:  req.ClientID,
		Title:     req.Title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		AutoRenew: req.AutoRenew,
		Status:    domain.ContractDraft,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, contract)
}

// GetContract handles GET /admin/contracts/:id.
func (h *RecordsHandler) GetContract(c echo.Context) error {
	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	contract, err := h.recordsService.GetContract(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contract)
}

// ListContracts handles GET /admin/clients/:id/contracts.
func (h *RecordsHandler) ListContracts(c echo.Context) error {
	clientID, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	contracts, err := h.recordsService.ListContracts(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contracts)
}

// SetContractStatus handles PUT /admin/contracts/:id/status.
func (h *RecordsHandler) SetContractStatus(c echo.Context) error {
	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	var req contractStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	contract, err := h.recordsService.UpdateContractStatus(c.Request().Context(), id, domain.ContractStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contract)
}

// ListAudit handles GET /admin/audit?limit=. Entries come back newest
// first; the repository caps the limit.
func (h *RecordsHandler) ListAudit(c echo.Context) error {
	var limit int64
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}

	entries, err := h.recordsService.ListAudit(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
