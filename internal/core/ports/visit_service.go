package ports

import (
	"context"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
)

// RecordVisitInput is a consultation form submitted by a doctor.
type RecordVisitInput struct {
	PatientID     string
	DoctorID      string
	VisitDate     string // YYYY-MM-DD
	Vitals        domain.Vitals
	Symptoms      string
	Diagnosis     string
	TreatmentPlan string
	Notes         string
}

// ListVisitsInput identifies the patient and the caller, for access checks.
type ListVisitsInput struct {
	PatientID  string
	CallerID   string
	CallerRole string
}

type VisitService interface {
	RecordVisit(ctx context.Context, in RecordVisitInput) (*domain.Visit, error)
	ListVisits(ctx context.Context, in ListVisitsInput) ([]*domain.Visit, error)
}
