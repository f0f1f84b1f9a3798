package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicnavigator/clinic-portal/internal/api/middleware"
)

type callerClaims struct {
	UserID    string
	Role      string
	SessionID string
}

// ctxClaims reads the claims injected by the Auth middleware. A missing uid
// means the middleware did not run for this route.
func ctxClaims(c echo.Context) (callerClaims, error) {
	var cl callerClaims
	cl.UserID, _ = c.Get(middleware.CtxUserID).(string)
	cl.Role, _ = c.Get(middleware.CtxRole).(string)
	cl.SessionID, _ = c.Get(middleware.CtxSessionID).(string)

	if cl.UserID == "" {
		return callerClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return cl, nil
}
