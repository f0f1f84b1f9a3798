package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
)

// AuthService signs users in, routes them by role and signs them out.
type AuthService struct {
	creds     ports.CredentialRepository
	profiles  ports.ProfileRepository
	sessions  ports.SessionStore
	activity  ports.ActivityRecorder
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger

	compare func(hash, password []byte) error
}

// unknownUserHash is compared against when no credential matches, so an
// unknown email costs the same bcrypt round as a wrong password.
var unknownUserHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("unknown-user"), bcrypt.DefaultCost)
	return h
})

func NewAuthService(
	creds ports.CredentialRepository,
	profiles ports.ProfileRepository,
	sessions ports.SessionStore,
	activity ports.ActivityRecorder,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		creds:     creds,
		profiles:  profiles,
		sessions:  sessions,
		activity:  activity,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		compare:   bcrypt.CompareHashAndPassword,
	}
}

// Login checks the credential pair, opens a session and resolves the user's
// dashboard from the role on their profile. A missing profile or an unknown
// role closes the session again before returning.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, domain.ErrMissingCredentials
	}
	if !validEmail(email) {
		return nil, domain.ErrInvalidEmail
	}

	cred, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			_ = s.compare(unknownUserHash(), []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if s.compare([]byte(cred.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	session := domain.Session{
		ID:        uuid.NewString(),
		UserID:    cred.ID,
		ExpiresAt: now.Add(s.tokenTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("login: open session: %w", err)
	}

	profile, err := s.profiles.Get(ctx, cred.ID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			s.signOut(ctx, session, "profile missing")
			return nil, domain.ErrProfileNotFound
		}
		s.signOut(ctx, session, "profile lookup failed")
		return nil, fmt.Errorf("login: load profile: %w", err)
	}

	role, err := domain.ParseRole(profile.Role)
	if err != nil {
		s.signOut(ctx, session, "role undefined")
		return nil, err
	}
	path, _ := role.DashboardPath()

	session.Role = role.String()
	if err := s.sessions.Save(ctx, session); err != nil {
		s.signOut(ctx, session, "session update failed")
		return nil, fmt.Errorf("login: update session: %w", err)
	}

	token, err := s.generateToken(cred, session)
	if err != nil {
		s.signOut(ctx, session, "token signing failed")
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.activity.Record(domain.Activity{
		Kind:       domain.ActivityLogin,
		ActorID:    cred.ID,
		SubjectID:  cred.ID,
		Detail:     role.String(),
		OccurredAt: now,
	})
	s.log.Info().Str("uid", cred.ID).Str("role", role.String()).Msg("login succeeded")

	return &ports.LoginResult{
		Token:         token,
		ExpiresAt:     session.ExpiresAt,
		Role:          role,
		DashboardPath: path,
		Profile:       profile,
	}, nil
}

// signOut revokes a session opened during a login that could not be routed.
func (s *AuthService) signOut(ctx context.Context, session domain.Session, reason string) {
	if err := s.sessions.Revoke(ctx, session.ID); err != nil {
		s.log.Warn().Err(err).Str("uid", session.UserID).Msg("failed to revoke session")
	}
	s.activity.Record(domain.Activity{
		Kind:       domain.ActivityLoginRejected,
		ActorID:    session.UserID,
		SubjectID:  session.UserID,
		Detail:     reason,
		OccurredAt: time.Now().UTC(),
	})
	s.log.Warn().Str("uid", session.UserID).Str("reason", reason).Msg("login rejected, session signed out")
}

// Logout revokes the caller's session.
func (s *AuthService) Logout(ctx context.Context, sessionID, uid string) error {
	if sessionID == "" {
		return domain.ErrSessionRevoked
	}
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.activity.Record(domain.Activity{
		Kind:       domain.ActivityLogout,
		ActorID:    uid,
		SubjectID:  uid,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// Register creates a self-service account. New accounts are always patients
// without an assigned doctor.
func (s *AuthService) Register(ctx context.Context, in ports.SelfRegisterInput) (*domain.Profile, error) {
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name", domain.ErrMissingFields)
	}

	cred, err := createCredential(ctx, s.creds, normalizeEmail(in.Email), in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		UID:       cred.ID,
		Email:     cred.Email,
		FullName:  fullName,
		Role:      string(domain.RolePatient),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		s.log.Error().Err(err).Str("uid", cred.ID).Msg("credential created but profile write failed")
		return nil, fmt.Errorf("register: create profile: %w", err)
	}

	s.activity.Record(domain.Activity{
		Kind:       domain.ActivitySelfRegistered,
		ActorID:    cred.ID,
		SubjectID:  cred.ID,
		OccurredAt: now,
	})
	return profile, nil
}

// Resolve maps a role tag to its dashboard path and navigation.
func (s *AuthService) Resolve(roleTag string) (*ports.RouteInfo, error) {
	role, err := domain.ParseRole(roleTag)
	if err != nil {
		return nil, err
	}
	path, _ := role.DashboardPath()
	return &ports.RouteInfo{
		Role:          role,
		DashboardPath: path,
		Navigation:    domain.Navigation(role),
	}, nil
}

func (s *AuthService) generateToken(cred *domain.Credential, session domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sub":   cred.ID,
		"email": cred.Email,
		"role":  session.Role,
		"jti":   session.ID,
		"iat":   time.Now().Unix(),
		"exp":   session.ExpiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
