package handler

import (
	"time"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

// Presence and format of email and password are checked by the auth service
// so that the user sees the login form's own messages.
type loginRequest struct {
	Email    string `json:"email"    validate:"max=254"`
	Password string `json:"password" validate:"max=128"`
}

type loginResponse struct {
	Token         string           `json:"token"`
	ExpiresAt     string           `json:"expires_at"`
	Role          string           `json:"role"`
	DashboardPath string           `json:"dashboard_path"`
	Navigation    []domain.NavItem `json:"navigation"`
	Profile       *domain.Profile  `json:"profile"`
}

type registerRequest struct {
	FullName        string `json:"full_name"        validate:"max=120"`
	Email           string `json:"email"            validate:"max=254"`
	Password        string `json:"password"         validate:"max=128"`
	ConfirmPassword string `json:"confirm_password" validate:"max=128"`
}

type sessionResponse struct {
	UserID        string           `json:"uid"`
	Role          string           `json:"role"`
	DashboardPath string           `json:"dashboard_path"`
	Navigation    []domain.NavItem `json:"navigation"`
}

// --- Profile ---

type updateProfileRequest struct {
	FullName    *string `json:"full_name"     validate:"omitempty,max=120"`
	Phone       *string `json:"phone"         validate:"omitempty,max=32"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender      *string `json:"gender"        validate:"omitempty,max=32"`
	Address     *string `json:"address"       validate:"omitempty,max=300"`
}

// --- Patients ---

type registerPatientRequest struct {
	FirstName        string `json:"first_name"         validate:"max=60"`
	LastName         string `json:"last_name"          validate:"max=60"`
	Email            string `json:"email"              validate:"max=254"`
	Password         string `json:"password"           validate:"max=128"`
	ConfirmPassword  string `json:"confirm_password"   validate:"max=128"`
	DateOfBirth      string `json:"date_of_birth"      validate:"omitempty,datetime=2006-01-02"`
	Gender           string `json:"gender"             validate:"max=32"`
	Phone            string `json:"phone"              validate:"max=32"`
	Address          string `json:"address"            validate:"max=300"`
	AssignedDoctorID string `json:"assigned_doctor_id" validate:"max=64"`
}

type doctorsResponse struct {
	Doctors []domain.DoctorSummary `json:"doctors"`
}

type patientsResponse struct {
	Patients []*domain.Profile `json:"patients"`
}

// --- Visits ---

type vitalsRequest struct {
	Temperature     string `json:"temperature"      validate:"max=16"`
	BloodPressure   string `json:"bp"               validate:"max=16"`
	HeartRate       string `json:"heart_rate"       validate:"max=16"`
	RespiratoryRate string `json:"respiratory_rate" validate:"max=16"`
}

type recordVisitRequest struct {
	VisitDate     string        `json:"visit_date"     validate:"max=10"`
	Vitals        vitalsRequest `json:"vitals"`
	Symptoms      string        `json:"symptoms"       validate:"max=4000"`
	Diagnosis     string        `json:"diagnosis"      validate:"max=4000"`
	TreatmentPlan string        `json:"treatment_plan" validate:"max=4000"`
	Notes         string        `json:"notes"          validate:"max=4000"`
}

type visitResponse struct {
	ID            string        `json:"id"`
	PatientID     string        `json:"patient_id"`
	DoctorID      string        `json:"doctor_id"`
	VisitDate     string        `json:"visit_date"`
	Vitals        domain.Vitals `json:"vitals"`
	Symptoms      string        `json:"symptoms"`
	Diagnosis     string        `json:"diagnosis"`
	TreatmentPlan string        `json:"treatment_plan"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     string        `json:"created_at"`
}

type visitsResponse struct {
	Visits []visitResponse `json:"visits"`
}

func toVisitResponse(v *domain.Visit) visitResponse {
	return visitResponse{
		ID:            v.ID,
		PatientID:     v.PatientID,
		DoctorID:      v.DoctorID,
		VisitDate:     v.VisitDate.Format(domain.VisitDateLayout),
		Vitals:        v.Vitals,
		Symptoms:      v.Symptoms,
		Diagnosis:     v.Diagnosis,
		TreatmentPlan: v.TreatmentPlan,
		Notes:         v.Notes,
		CreatedAt:     v.CreatedAt.Format(time.RFC3339),
	}
}
