package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
)

// ProfileService reads and merges user profile documents.
type ProfileService struct {
	profiles ports.ProfileRepository
	creds    ports.CredentialRepository
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewProfileService(
	profiles ports.ProfileRepository,
	creds ports.CredentialRepository,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *ProfileService {
	return &ProfileService{profiles: profiles, creds: creds, activity: activity, log: log}
}

func (s *ProfileService) GetProfile(ctx context.Context, uid string) (*domain.Profile, error) {
	p, err := s.profiles.Get(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// SaveProfile merges the self-service fields into the user's profile. The
// email is taken from the credential and the role is left as stored.
func (s *ProfileService) SaveProfile(ctx context.Context, uid string, patch domain.ProfilePatch) (*domain.Profile, error) {
	if patch.DateOfBirth != nil && *patch.DateOfBirth != "" {
		if _, err := time.Parse(domain.VisitDateLayout, *patch.DateOfBirth); err != nil {
			return nil, fmt.Errorf("%w: date of birth must be YYYY-MM-DD", domain.ErrMissingFields)
		}
	}

	cred, err := s.creds.FindByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	p, err := s.profiles.Merge(ctx, uid, cred.Email, patch)
	if err != nil {
		s.log.Error().Err(err).Str("uid", uid).Msg("failed to save profile")
		return nil, fmt.Errorf("save profile: %w", err)
	}

	s.activity.Record(domain.Activity{
		Kind:       domain.ActivityProfileUpdated,
		ActorID:    uid,
		SubjectID:  uid,
		OccurredAt: time.Now().UTC(),
	})
	return p, nil
}

// ListAssignedPatients returns the doctor's patients, optionally filtered by
// a case-insensitive match on name, email or uid.
func (s *ProfileService) ListAssignedPatients(ctx context.Context, doctorID, search string) ([]*domain.Profile, error) {
	if doctorID == "" {
		return nil, errors.New("list patients: doctor id is required")
	}

	patients, err := s.profiles.List(ctx, ports.ProfileFilter{
		Role:             domain.RolePatient,
		AssignedDoctorID: doctorID,
	})
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}

	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return patients, nil
	}

	out := make([]*domain.Profile, 0, len(patients))
	for _, p := range patients {
		if strings.Contains(strings.ToLower(p.FullName), term) ||
			strings.Contains(strings.ToLower(p.Email), term) ||
			strings.Contains(strings.ToLower(p.UID), term) {
			out = append(out, p)
		}
	}
	return out, nil
}
