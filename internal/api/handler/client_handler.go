package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// ClientHandler handles admin-side client account management.
type ClientHandler struct {
	clientService ports.ClientService
	audit         ports.AuditSink
	validRef      RefValidator
}

func NewClientHandler(clientService ports.ClientService, audit ports.AuditSink, validRef RefValidator) *ClientHandler {
	return &ClientHandler{clientService: clientService, audit: audit, validRef: validRef}
}

type createClientRequest struct {
	BusinessName    string  `json:"businessName" validate:"required"`
	ContactName     string  `json:"contactName" validate:"required"`
	ContactEmail    string  `json:"contactEmail" validate:"required,email"`
	ContactPhone    string  `json:"contactPhone"`
	PlanID          string  `json:"planId"`
	LicenseCount    int     `json:"licenseCount" validate:"gte=0"`
	PricePerLicense float64 `json:"pricePerLicense" validate:"gte=0"`
	Currency        string  `json:"currency"`
}

type updateClientRequest struct {
	BusinessName    *string               `json:"businessName"`
	ContactName     *string               `json:"contactName"`
	ContactEmail    *string               `json:"contactEmail"`
	ContactPhone    *string               `json:"contactPhone"`
	PlanID          *string               `json:"planId"`
	LicenseCount    *int                  `json:"licenseCount"`
	PricePerLicense *float64              `json:"pricePerLicense"`
	Currency        *string               `json:"currency"`
	PaymentStatus   *domain.PaymentStatus `json:"paymentStatus"`
	IsActive        *bool                 `json:"isActive"`
}

// List handles GET /admin/clients.
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.clientService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

// Get handles GET /admin/clients/:id.
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	client, err := h.clientService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Create handles POST /admin/clients.
func (h *ClientHandler) Create(c echo.Context) error {
	actorID, actorRole, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.clientService.Create(c.Request().Context(), ports.CreateClientInput{
		BusinessName:    req.BusinessName,
		ContactName:     req.ContactName,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		PlanID:          req.PlanID,
		LicenseCount:    req.LicenseCount,
		PricePerLicense: req.PricePerLicense,
		Currency:        req.Currency,
	})
	if err != nil {
		return err
	}

	h.audit.Record(auditEntry(actorID, actorRole, "client.create", "client", client.ID, client.BusinessName))

	return c.JSON(http.StatusCreated, client)
}

// Update handles PUT /admin/clients/:id.
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	var req updateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	client, err := h.clientService.Update(c.Request().Context(), id, ports.ClientPatch{
		BusinessName:    req.BusinessName,
		ContactName:     req.ContactName,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		PlanID:          req.PlanID,
		LicenseCount:    req.LicenseCount,
		PricePerLicense: req.PricePerLicense,
		Currency:        req.Currency,
		PaymentStatus:   req.PaymentStatus,
		IsActive:        req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Export handles GET /admin/clients/export?format=csv|json and streams the
// roster as a file download.
func (h *ClientHandler) Export(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}

	data, contentType, err := h.clientService.ExportRoster(c.Request().Context(), format)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="clients.`+format+`"`)
	return c.Blob(http.StatusOK, contentType, data)
}
