package ports

import (
	"context"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
)

// CredentialRepository stores authentication records.
type CredentialRepository interface {
	// FindByEmail and FindByID return domain.ErrCredentialNotFound when nothing matches.
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
	FindByID(ctx context.Context, id string) (*domain.Credential, error)
	// Create returns domain.ErrEmailInUse when the email is already registered.
	Create(ctx context.Context, cred *domain.Credential) error
}
