package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// UserHandler handles admin-side account management.
type UserHandler struct {
	authService ports.AuthService
	audit       ports.AuditSink
	validRef    RefValidator
}

func NewUserHandler(authService ports.AuthService, audit ports.AuditSink, validRef RefValidator) *UserHandler {
	return &UserHandler{authService: authService, audit: audit, validRef: validRef}
}

type createUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=ADMIN SDR CLIENT"`
	ClientID string `json:"clientId"`
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	ClientID *string `json:"clientId"`
}

type setActiveRequest struct {
	IsActive bool `json:"isActive"`
}

type passwordResponse struct {
	Password string `json:"password"`
}

// List handles GET /admin/users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /admin/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	user, err := h.authService.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create handles POST /admin/users.
func (h *UserHandler) Create(c echo.Context) error {
	actorID, actorRole, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		ClientID: req.ClientID,
	})
	if err != nil {
		return err
	}

	h.audit.Record(auditEntry(actorID, actorRole, "user.create", "user", user.ID, "role="+user.Role))

	return c.JSON(http.StatusCreated, user)
}

// Update handles PUT /admin/users/:id.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.authService.UpdateUser(c.Request().Context(), id, ports.UserPatch{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		ClientID: req.ClientID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SetActive handles PUT /admin/users/:id/active. Accounts are never
// deleted; disabling blocks login while keeping history intact.
func (h *UserHandler) SetActive(c echo.Context) error {
	actorID, actorRole, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.authService.SetUserActive(c.Request().Context(), id, req.IsActive); err != nil {
		return err
	}

	action := "user.disable"
	if req.IsActive {
		action = "user.enable"
	}
	h.audit.Record(auditEntry(actorID, actorRole, action, "user", id, ""))

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// RevealPassword handles GET /admin/users/:id/password. Every reveal is
// written to the audit trail with the acting admin's identity.
func (h *UserHandler) RevealPassword(c echo.Context) error {
	actorID, actorRole, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	password, err := h.authService.RevealPassword(c.Request().Context(), id)
	if err != nil {
		return err
	}

	h.audit.Record(auditEntry(actorID, actorRole, "user.password_reveal", "user", id, ""))

	return c.JSON(http.StatusOK, passwordResponse{Password: password})
}
