package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

type errorMapping struct {
	target error
	code   int
	msg    string
}

// errorTable maps domain errors to the status and message shown to the user.
// An empty msg means the wrapped error text is shown.
var errorTable = []errorMapping{
	{domain.ErrMissingCredentials, http.StatusBadRequest, "Please enter both email and password."},
	{domain.ErrInvalidEmail, http.StatusBadRequest, "Invalid email format."},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password."},
	{domain.ErrProfileNotFound, http.StatusForbidden, "Could not find user data. Please contact support."},
	{domain.ErrRoleUndefined, http.StatusForbidden, "Your role is not configured for redirection."},
	{domain.ErrSessionRevoked, http.StatusUnauthorized, "session expired"},
	{domain.ErrCredentialNotFound, http.StatusUnauthorized, "session expired"},
	{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
	{domain.ErrMissingFields, http.StatusUnprocessableEntity, ""},
	{domain.ErrWeakPassword, http.StatusUnprocessableEntity, "Password must be at least 6 characters long."},
	{domain.ErrPasswordMismatch, http.StatusUnprocessableEntity, "Passwords do not match."},
	{domain.ErrDoctorNotAssigned, http.StatusUnprocessableEntity, "Please assign a doctor to the patient."},
	{domain.ErrDoctorNotFound, http.StatusUnprocessableEntity, "Assigned doctor not found."},
	{domain.ErrEmailInUse, http.StatusConflict, "This email address is already in use."},
	{domain.ErrPatientNotFound, http.StatusNotFound, "Patient data not found."},
	{domain.ErrNotAPatient, http.StatusUnprocessableEntity, "Visits can only be recorded for patients."},
	{domain.ErrInvalidVisitDate, http.StatusUnprocessableEntity, "visit date must be YYYY-MM-DD"},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes and user-facing messages.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			if m.msg == "" {
				return m.code, fieldMessage(err, m.target)
			}
			return m.code, m.msg
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// fieldMessage returns the detail a service attached after "<sentinel>: ",
// falling back to the sentinel text.
func fieldMessage(err, target error) string {
	msg := err.Error()
	prefix := target.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return target.Error()
}
