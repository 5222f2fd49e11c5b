package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// PlanHandler handles admin-side plan management.
type PlanHandler struct {
	planService ports.PlanService
	audit       ports.AuditSink
	validRef    RefValidator
}

func NewPlanHandler(planService ports.PlanService, audit ports.AuditSink, validRef RefValidator) *PlanHandler {
	return &PlanHandler{planService: planService, audit: audit, validRef: validRef}
}

type createPlanRequest struct {
	Name            string  `json:"name" validate:"required"`
	Description     string  `json:"description"`
	PricePerLicense float64 `json:"pricePerLicense" validate:"gte=0"`
	Currency        string  `json:"currency" validate:"required"`
	BillingPeriod   string  `json:"billingPeriod" validate:"required,oneof=MONTHLY QUARTERLY YEARLY"`
}

type updatePlanRequest struct {
	Name            *string               `json:"name"`
	Description     *string               `json:"description"`
	PricePerLicense *float64              `json:"pricePerLicense"`
	Currency        *string               `json:"currency"`
	BillingPeriod   *domain.BillingPeriod `json:"billingPeriod"`
}

// List handles GET /admin/plans.
func (h *PlanHandler) List(c echo.Context) error {
	plans, err := h.planService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plans)
}

// Get handles GET /admin/plans/:id.
func (h *PlanHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	plan, err := h.planService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// Create handles POST /admin/plans.
func (h *PlanHandler) Create(c echo.Context) error {
	var req createPlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plan, err := h.planService.Create(c.Request().Context(), &domain.Plan{
		Name:            req.Name,
		Description:     req.Description,
		PricePerLicense: req.PricePerLicense,
		Currency:        req.Currency,
		BillingPeriod:   domain.BillingPeriod(req.BillingPeriod),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, plan)
}

// Update handles PUT /admin/plans/:id.
func (h *PlanHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	var req updatePlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	plan, err := h.planService.Update(c.Request().Context(), id, ports.PlanPatch{
		Name:            req.Name,
		Description:     req.Description,
		PricePerLicense: req.PricePerLicense,
		Currency:        req.Currency,
		BillingPeriod:   req.BillingPeriod,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// Deactivate handles POST /admin/plans/:id/deactivate. A plan still
// referenced by clients cannot be deactivated.
func (h *PlanHandler) Deactivate(c echo.Context) error {
	actorID, actorRole, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	if err := h.planService.Deactivate(c.Request().Context(), id); err != nil {
		return err
	}

	h.audit.Record(auditEntry(actorID, actorRole, "plan.deactivate", "plan", id, ""))

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Activate handles POST /admin/plans/:id/activate.
func (h *PlanHandler) Activate(c echo.Context) error {
	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	if err := h.planService.Activate(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
