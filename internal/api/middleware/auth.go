package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
)

// Context keys set by Auth.
const (
	CtxUserID    = "uid"
	CtxRole      = "role"
	CtxEmail     = "email"
	CtxSessionID = "session_id"
)

// Auth validates the JWT, checks that its session has not been signed out
// and injects the claims into the echo context.
func Auth(jwtSecret string, sessions ports.SessionStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sessionID, _ := claims["jti"].(string)
			uid, _ := claims["sub"].(string)
			if sessionID == "" || uid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			live, err := sessions.Exists(c.Request().Context(), sessionID)
			if err != nil {
				log.Error().Err(err).Str("session_id", sessionID).Msg("session lookup failed")
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session store unavailable")
			}
			if !live {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}

			c.Set(CtxUserID, uid)
			c.Set(CtxRole, claims["role"])
			c.Set(CtxEmail, claims["email"])
			c.Set(CtxSessionID, sessionID)

			return next(c)
		}
	}
}
