package ports

import (
	"context"
	"time"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
)

// LoginResult is what a successful login resolves to.
type LoginResult struct {
	Token         string
	ExpiresAt     time.Time
	Role          domain.Role
	DashboardPath string
	Profile       *domain.Profile
}

// SelfRegisterInput carries the public registration form.
type SelfRegisterInput struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// RouteInfo is the landing route and menu for a role.
type RouteInfo struct {
	Role          domain.Role
	DashboardPath string
	Navigation    []domain.NavItem
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID, uid string) error
	Register(ctx context.Context, in SelfRegisterInput) (*domain.Profile, error)
	Resolve(role string) (*RouteInfo, error)
}
