package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicnavigator/clinic-portal/internal/api/metrics"
	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
)

// VisitHandler records and lists consultation notes.
type VisitHandler struct {
	service ports.VisitService
}

func NewVisitHandler(service ports.VisitService) *VisitHandler {
	return &VisitHandler{service: service}
}

// Record handles POST /v1/patients/:id/visits.
//
// @Summary      Record a visit
// @Tags         visits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Patient id"
// @Param        body  body      recordVisitRequest  true  "Visit notes"
// @Success      201   {object}  visitResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/patients/{id}/visits [post]
func (h *VisitHandler) Record(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req recordVisitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	v, err := h.service.RecordVisit(c.Request().Context(), ports.RecordVisitInput{
		PatientID: c.Param("id"),
		DoctorID:  claims.UserID,
		VisitDate: req.VisitDate,
		Vitals: domain.Vitals{
			Temperature:     req.Vitals.Temperature,
			BloodPressure:   req.Vitals.BloodPressure,
			HeartRate:       req.Vitals.HeartRate,
			RespiratoryRate: req.Vitals.RespiratoryRate,
		},
		Symptoms:      req.Symptoms,
		Diagnosis:     req.Diagnosis,
		TreatmentPlan: req.TreatmentPlan,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	metrics.VisitsRecordedTotal.Inc()

	return c.JSON(http.StatusCreated, toVisitResponse(v))
}

// List handles GET /v1/patients/:id/visits.
//
// @Summary      List a patient's visits
// @Description  Newest visit first. Patients may only read their own history.
// @Tags         visits
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Patient id"
// @Success      200  {object}  visitsResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/patients/{id}/visits [get]
func (h *VisitHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	visits, err := h.service.ListVisits(c.Request().Context(), ports.ListVisitsInput{
		PatientID:  c.Param("id"),
		CallerID:   claims.UserID,
		CallerRole: claims.Role,
	})
	if err != nil {
		return err
	}

	out := make([]visitResponse, 0, len(visits))
	for _, v := range visits {
		out = append(out, toVisitResponse(v))
	}
	return c.JSON(http.StatusOK, visitsResponse{Visits: out})
}
