package ports

import (
	"context"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
)

// RegisterPatientInput is the receptionist's registration form.
type RegisterPatientInput struct {
	FirstName        string
	LastName         string
	Email            string
	Password         string
	ConfirmPassword  string
	DateOfBirth      string
	Gender           string
	Phone            string
	Address          string
	AssignedDoctorID string
	RegisteredBy     string
}

type RegistrarService interface {
	RegisterPatient(ctx context.Context, in RegisterPatientInput) (*domain.Profile, error)
	ListDoctors(ctx context.Context) ([]domain.DoctorSummary, error)
}
