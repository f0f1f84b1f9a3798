package ports

import (
	"context"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
)

// ProfileFilter narrows a profile listing. Empty fields are ignored.
type ProfileFilter struct {
	Role             domain.Role
	AssignedDoctorID string
}

// ProfileRepository reads and writes user profile documents.
type ProfileRepository interface {
	// Get returns domain.ErrProfileNotFound when the uid has no profile.
	Get(ctx context.Context, uid string) (*domain.Profile, error)
	Create(ctx context.Context, p *domain.Profile) error
	// Merge writes only the non-nil fields of patch, plus email, creating the
	// document when it does not exist. The role is never written.
	Merge(ctx context.Context, uid, email string, patch domain.ProfilePatch) (*domain.Profile, error)
	List(ctx context.Context, filter ProfileFilter) ([]*domain.Profile, error)
}
