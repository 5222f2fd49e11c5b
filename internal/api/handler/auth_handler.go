package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/salesbridge/dashboard-api/internal/api/metrics"
	"github.com/salesbridge/dashboard-api/internal/api/middleware"
	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// AuthHandler handles session lifecycle: login, logout and identity lookup.
type AuthHandler struct {
	authService         ports.AuthService
	sessionTTL          time.Duration
	secureCookies       bool
	registrationEnabled bool
}

func NewAuthHandler(authService ports.AuthService, sessionTTL time.Duration, secureCookies, registrationEnabled bool) *AuthHandler {
	return &AuthHandler{
		authService:         authService,
		sessionTTL:          sessionTTL,
		secureCookies:       secureCookies,
		registrationEnabled: registrationEnabled,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=ADMIN SDR CLIENT"`
	ClientID string `json:"clientId"`
}

// Login authenticates a user and starts a cookie session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	c.SetCookie(h.sessionCookie(token, h.sessionTTL))

	return c.JSON(http.StatusOK, loginResponse{Success: true, User: user})
}

// Logout clears the session cookie. The token itself simply expires; there
// is no server-side session state to revoke.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -time.Hour))
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Me returns the authenticated user's own record.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.authService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Register creates an account through the public endpoint. Self-service
// registration is disabled in normal operation; accounts are provisioned by
// admins and the route answers 410 Gone.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      410   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	if !h.registrationEnabled {
		return domain.ErrFeatureDisabled
	}

	var req registerRequest
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
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
