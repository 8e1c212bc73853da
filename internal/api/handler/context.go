package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emotional-truth/portal-api/internal/core/domain"
)

// ctxActor extracts the actor and session id injected by the Auth
// middleware and fast-fails before any service call: both must be present,
// their absence means the middleware did not run on this route.
func ctxActor(c echo.Context) (*domain.User, string, error) {
	user, _ := c.Get("user").(*domain.User)
	sessionID, _ := c.Get("session_id").(string)
	if user == nil || sessionID == "" {
		return nil, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
	}
	return user, sessionID, nil
}
