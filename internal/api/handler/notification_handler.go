package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// NotificationHandler serves the per-user notification inbox. The same
// handler is mounted under every role group; routes are always scoped to
// the caller's own user id.
type NotificationHandler struct {
	recordsService ports.RecordsService
	validRef       RefValidator
}

func NewNotificationHandler(recordsService ports.RecordsService, validRef RefValidator) *NotificationHandler {
	return &NotificationHandler{recordsService: recordsService, validRef: validRef}
}

// List handles GET .../notifications.
func (h *NotificationHandler) List(c echo.Context) error {
	userID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	notifications, err := h.recordsService.ListNotifications(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkRead handles POST .../notifications/:id/read. Another user's
// notification is indistinguishable from a missing one.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	if err := h.recordsService.MarkNotificationRead(c.Request().Context(), id, userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
