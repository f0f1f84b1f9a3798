package ports

import (
	"context"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
)

// VisitRepository is append-only: visits are never updated or deleted.
type VisitRepository interface {
	Insert(ctx context.Context, v *domain.Visit) error
	// ListByPatient returns visits newest visit date first.
	ListByPatient(ctx context.Context, patientID string) ([]*domain.Visit, error)
}
