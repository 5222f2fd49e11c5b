package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - user_id and role must be non-empty (presence proves the middleware ran).
//   - client role requires a non-empty client_id; without it the token is
//     structurally valid but operationally unusable, so reject with 401.
func ctxClaims(c echo.Context) (userID, role, clientID string, err error) {
	userID, _ = c.Get("user_id").(string)
	role, _ = c.Get("role").(string)
	if userID == "" || role == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	clientID, _ = c.Get("client_id").(string)
	if role == domain.RoleClient && clientID == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing client identity")
	}

	return userID, role, clientID, nil
}

// RefValidator reports whether a path id is a well-formed document reference.
// The mongo layer provides the concrete check; handlers stay driver-free.
type RefValidator func(id string) bool

// pathID validates the named path parameter as a document reference so a
// malformed id fails with 400 before any repository lookup.
func pathID(c echo.Context, name string, valid RefValidator) (string, error) {
	id := c.Param(name)
	if !valid(id) {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// auditEntry assembles an audit record for the async writer. CreatedAt is
// stamped by the writer on enqueue.
func auditEntry(actorID, actorRole, action, targetType, targetID, detail string) domain.AuditEntry {
	return domain.AuditEntry{
		ActorID:    actorID,
		ActorRole:  actorRole,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Detail:     detail,
	}
}
