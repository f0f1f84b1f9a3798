package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicnavigator/clinic-portal/internal/api/metrics"
	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login signs the user in and returns their token and landing route.
//
// @Summary      Login
// @Description  Authenticates the user and resolves the dashboard for the role stored on their profile.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Token:         res.Token,
		ExpiresAt:     res.ExpiresAt.Format(time.RFC3339),
		Role:          res.Role.String(),
		DashboardPath: res.DashboardPath,
		Navigation:    domain.Navigation(res.Role),
		Profile:       res.Profile,
	})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingCredentials), errors.Is(err, domain.ErrInvalidEmail):
		return "invalid_input"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrProfileNotFound):
		return "profile_missing"
	case errors.Is(err, domain.ErrRoleUndefined):
		return "role_undefined"
	default:
		return "error"
	}
}

// Register creates a Patient account from the public sign-up form.
//
// @Summary      Register as a patient
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Sign-up details"
// @Success      201   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	profile, err := h.authService.Register(c.Request().Context(), ports.SelfRegisterInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("self").Inc()

	return c.JSON(http.StatusCreated, profile)
}

// Logout signs the current session out.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), claims.SessionID, claims.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "signed out"})
}

// Session returns the caller's role, dashboard path and navigation.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	info, err := h.authService.Resolve(claims.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		UserID:        claims.UserID,
		Role:          info.Role.String(),
		DashboardPath: info.DashboardPath,
		Navigation:    info.Navigation,
	})
}
