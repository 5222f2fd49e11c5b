package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// PortalHandler serves the client portal. Every route is scoped to the
// client identity carried in the caller's token; another client's data is
// indistinguishable from missing data.
type PortalHandler struct {
	clientService  ports.ClientService
	licenseService ports.LicenseService
	invoiceService ports.InvoiceService
	reportService  ports.ReportService
	updateService  ports.UpdateService
	validRef       RefValidator
}

func NewPortalHandler(
	clientService ports.ClientService,
	licenseService ports.LicenseService,
	invoiceService ports.InvoiceService,
	reportService ports.ReportService,
	updateService ports.UpdateService,
	validRef RefValidator,
) *PortalHandler {
	return &PortalHandler{
		clientService:  clientService,
		licenseService: licenseService,
		invoiceService: invoiceService,
		reportService:  reportService,
		updateService:  updateService,
		validRef:       validRef,
	}
}

// Profile handles GET /client/profile.
func (h *PortalHandler) Profile(c echo.Context) error {
	_, _, clientID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	client, err := h.clientService.Get(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Licenses handles GET /client/licenses.
func (h *PortalHandler) Licenses(c echo.Context) error {
	_, _, clientID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	licenses, err := h.licenseService.ListByClient(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, licenses)
}

// Invoices handles GET /client/invoices.
func (h *PortalHandler) Invoices(c echo.Context) error {
	_, _, clientID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	invoices, err := h.invoiceService.ListByClient(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoices)
}

// Invoice handles GET /client/invoices/:id.
func (h *PortalHandler) Invoice(c echo.Context) error {
	_, _, clientID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	invoice, err := h.invoiceService.GetForClient(c.Request().Context(), id, clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoice)
}

// InvoiceFile handles GET /client/invoices/:id/file.
func (h *PortalHandler) InvoiceFile(c echo.Context) error {
	_, _, clientID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	rc, info, err := h.invoiceService.OpenFileForClient(c.Request().Context(), id, clientID)
	if err != nil {
		return err
	}
	defer rc.Close()

	return streamFile(c, rc, info)
}

// Reports handles GET /client/reports.
func (h *PortalHandler) Reports(c echo.Context) error {
	_, _, clientID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	reports, err := h.reportService.ListByClient(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

// Updates handles GET /client/updates and returns only client-visible
// updates.
func (h *PortalHandler) Updates(c echo.Context) error {
	_, _, clientID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	updates, err := h.updateService.ListForClient(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updates)
}

// MarkUpdateRead handles POST /client/updates/:id/read.
func (h *PortalHandler) MarkUpdateRead(c echo.Context) error {
	_, _, clientID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	if err := h.updateService.MarkRead(c.Request().Context(), id, clientID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
