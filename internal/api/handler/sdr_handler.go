package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// SdrHandler handles the SDR workspace: assigned clients, updates, reports
// and the per-assignment chat blob. Every client-scoped route verifies the
// caller is assigned to that client before returning anything.
type SdrHandler struct {
	assignmentService ports.AssignmentService
	clientService     ports.ClientService
	licenseService    ports.LicenseService
	updateService     ports.UpdateService
	reportService     ports.ReportService
	validRef          RefValidator
}

func NewSdrHandler(
	assignmentService ports.AssignmentService,
	clientService ports.ClientService,
	licenseService ports.LicenseService,
	updateService ports.UpdateService,
	reportService ports.ReportService,
	validRef RefValidator,
) *SdrHandler {
	return &SdrHandler{
		assignmentService: assignmentService,
		clientService:     clientService,
		licenseService:    licenseService,
		updateService:     updateService,
		reportService:     reportService,
		validRef:          validRef,
	}
}

type createUpdateRequest struct {
	Type            string `json:"type" validate:"required,oneof=call email meeting note report other"`
	Title           string `json:"title" validate:"required"`
	Body            string `json:"body"`
	VisibleToClient bool   `json:"visibleToClient"`
}

type createReportRequest struct {
	ClientID    string               `json:"clientId" validate:"required"`
	LicenseID   string               `json:"licenseId"`
	PeriodStart time.Time            `json:"periodStart" validate:"required"`
	PeriodEnd   time.Time            `json:"periodEnd" validate:"required"`
	Metrics     domain.ReportMetrics `json:"metrics"`
}

type setChatRequest struct {
	ChatHistory string `json:"chatHistory"`
}

type assignedClient struct {
	Client     *domain.Client `json:"client"`
	LicenseIDs []string       `json:"licenseIds"`
	AssignedAt time.Time      `json:"assignedAt"`
}

// assignment returns the caller's assignment for the client, or
// domain.ErrForbidden when the SDR is not assigned to it.
func (h *SdrHandler) assignment(c echo.Context, sdrID, clientID string) (*domain.Assignment, error) {
	assignments, err := h.assignmentService.ListBySdr(c.Request().Context(), sdrID)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		if a.ClientID == clientID {
			return a, nil
		}
	}
	return nil, domain.ErrForbidden
}

// Clients handles GET /sdr/clients and returns the caller's assigned
// clients together with the license subset worked under each assignment.
func (h *SdrHandler) Clients(c echo.Context) error {
	sdrID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	assignments, err := h.assignmentService.ListBySdr(c.Request().Context(), sdrID)
	if err != nil {
		return err
	}

	result := make([]assignedClient, 0, len(assignments))
	for _, a := range assignments {
		client, err := h.clientService.Get(c.Request().Context(), a.ClientID)
		if err != nil {
			// Assignment pointing at a removed client; skip rather than fail
			// the whole listing.
			continue
		}
		result = append(result, assignedClient{
			Client:     client,
			LicenseIDs: a.LicenseIDs,
			AssignedAt: a.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, result)
}

// Client handles GET /sdr/clients/:id. An unassigned client answers 403
// even when it exists.
func (h *SdrHandler) Client(c echo.Context) error {
	sdrID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	clientID, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	if _, err := h.assignment(c, sdrID, clientID); err != nil {
		return err
	}

	client, err := h.clientService.Get(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// ClientLicenses handles GET /sdr/clients/:id/licenses and returns only
// the licenses covered by the caller's assignment.
func (h *SdrHandler) ClientLicenses(c echo.Context) error {
	sdrID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	clientID, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	assignment, err := h.assignment(c, sdrID, clientID)
	if err != nil {
		return err
	}

	subset, err := h.licenseService.ListByIDs(c.Request().Context(), assignment.LicenseIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subset)
}

// CreateUpdate handles POST /sdr/clients/:id/updates. The service enforces
// the assignment gate and rejects unassigned clients.
func (h *SdrHandler) CreateUpdate(c echo.Context) error {
	sdrID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	clientID, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	var req createUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update, err := h.updateService.Create(c.Request().Context(), ports.CreateUpdateInput{
		SdrID:           sdrID,
		ClientID:        clientID,
		Type:            domain.UpdateType(req.Type),
		Title:           req.Title,
		Body:            req.Body,
		VisibleToClient: req.VisibleToClient,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, update)
}

// Updates handles GET /sdr/updates.
func (h *SdrHandler) Updates(c echo.Context) error {
	sdrID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	updates, err := h.updateService.ListBySdr(c.Request().Context(), sdrID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updates)
}

// CreateReport handles POST /sdr/reports.
func (h *SdrHandler) CreateReport(c echo.Context) error {
	sdrID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !h.validRef(req.ClientID) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid clientId")
	}

	if _, err := h.assignment(c, sdrID, req.ClientID); err != nil {
		return err
	}

	report, err := h.reportService.Create(c.Request().Context(), &domain.Report{
		ClientID:    req.ClientID,
		LicenseID:   req.LicenseID,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Metrics:     req.Metrics,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, report)
}

// ClientReports handles GET /sdr/clients/:id/reports.
func (h *SdrHandler) ClientReports(c echo.Context) error {
	sdrID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	clientID, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	if _, err := h.assignment(c, sdrID, clientID); err != nil {
		return err
	}

	reports, err := h.reportService.ListByClient(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

// SetChat handles PUT /sdr/clients/:id/chat and replaces the chat history
// blob on the caller's assignment.
func (h *SdrHandler) SetChat(c echo.Context) error {
	sdrID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	clientID, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	var req setChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.assignmentService.SetChat(c.Request().Context(), sdrID, clientID, req.ChatHistory); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
