package ports

import (
	"context"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
)

// SessionStore tracks live sessions so a token can be signed out before it expires.
type SessionStore interface {
	Save(ctx context.Context, s domain.Session) error
	// Exists reports whether the session is still signed in.
	Exists(ctx context.Context, sessionID string) (bool, error)
	Revoke(ctx context.Context, sessionID string) error
}
