package ports

import (
	"context"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
)

// ProfileService is the profile store accessor used by settings pages and
// doctor patient lists.
type ProfileService interface {
	GetProfile(ctx context.Context, uid string) (*domain.Profile, error)
	SaveProfile(ctx context.Context, uid string, patch domain.ProfilePatch) (*domain.Profile, error)
	ListAssignedPatients(ctx context.Context, doctorID, search string) ([]*domain.Profile, error)
}
