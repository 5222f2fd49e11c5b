package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// ReportHandler exposes the admin read side of client activity: metric
// reports and the full update history, hidden updates included.
type ReportHandler struct {
	reportService ports.ReportService
	updateService ports.UpdateService
	validRef      RefValidator
}

func NewReportHandler(reportService ports.ReportService, updateService ports.UpdateService, validRef RefValidator) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		updateService: updateService,
		validRef:      validRef,
	}
}

// Get returns one report by id.
//
// @Summary      Get a report
// @Tags         reports
// @Produce      json
// @Param        id   path      string  true  "Report ID"
// @Success      200  {object}  domain.Report
// @Failure      404  {object}  map[string]string
// @Router       /admin/reports/{id} [get]
func (h *ReportHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	report, err := h.reportService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// ListByClient returns every report filed against a client.
//
// @Summary      List a client's reports
// @Tags         reports
// @Produce      json
// @Param        id   path      string  true  "Client ID"
// @Success      200  {array}   domain.Report
// @Router       /admin/clients/{id}/reports [get]
func (h *ReportHandler) ListByClient(c echo.Context) error {
	clientID, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	reports, err := h.reportService.ListByClient(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

// ClientUpdates returns a client's full update history, including updates
// never shown on the portal.
//
// @Summary      List a client's updates
// @Tags         reports
// @Produce      json
// @Param        id   path      string  true  "Client ID"
// @Success      200  {array}   domain.Update
// @Router       /admin/clients/{id}/updates [get]
func (h *ReportHandler) ClientUpdates(c echo.Context) error {
	clientID, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	updates, err := h.updateService.ListByClientAll(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updates)
}
