package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxActor extracts the authenticated actor injected by the Auth middleware
// and performs a fast-fail check before any service call: both the subject id
// and role must be present, otherwise the token is structurally valid but
// operationally unusable.
func ctxActor(c echo.Context) (actorID string, err error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	actorID, _ = c.Get("sub").(string)
	if actorID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "token missing subject identity")
	}

	return actorID, nil
}
