package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicnavigator/clinic-portal/internal/api/metrics"
	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
)

// PatientHandler serves front-desk registration and the doctor's patient list.
type PatientHandler struct {
	registrar ports.RegistrarService
	profiles  ports.ProfileService
}

func NewPatientHandler(registrar ports.RegistrarService, profiles ports.ProfileService) *PatientHandler {
	return &PatientHandler{registrar: registrar, profiles: profiles}
}

// Register handles POST /v1/patients.
//
// @Summary      Register a patient
// @Description  Creates the patient's account and profile and assigns a doctor.
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerPatientRequest  true  "Patient details"
// @Success      201   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/patients [post]
func (h *PatientHandler) Register(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req registerPatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	p, err := h.registrar.RegisterPatient(c.Request().Context(), ports.RegisterPatientInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Password:         req.Password,
		ConfirmPassword:  req.ConfirmPassword,
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		Phone:            req.Phone,
		Address:          req.Address,
		AssignedDoctorID: req.AssignedDoctorID,
		RegisteredBy:     claims.UserID,
	})
	if err != nil {
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("staff").Inc()

	return c.JSON(http.StatusCreated, p)
}

// ListDoctors handles GET /v1/doctors.
//
// @Summary      List doctors
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  doctorsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/doctors [get]
func (h *PatientHandler) ListDoctors(c echo.Context) error {
	doctors, err := h.registrar.ListDoctors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doctorsResponse{Doctors: doctors})
}

// ListAssigned handles GET /v1/patients for the signed-in doctor.
//
// @Summary      List my patients
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Case-insensitive match on name, email or id"
// @Success      200  {object}  patientsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/patients [get]
func (h *PatientHandler) ListAssigned(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	patients, err := h.profiles.ListAssignedPatients(c.Request().Context(), claims.UserID, c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patientsResponse{Patients: patients})
}
