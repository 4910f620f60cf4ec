package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both the subject and
// the role must be present, otherwise the token is structurally valid but
// operationally unusable.
func ctxIdentity(c echo.Context) (voterID, role string, err error) {
	voterID, _ = c.Get("voter_id").(string)
	role, _ = c.Get("role").(string)
	if voterID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return voterID, role, nil
}
