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

// RegistrarService registers patients on behalf of the front desk.
type RegistrarService struct {
	creds    ports.CredentialRepository
	profiles ports.ProfileRepository
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewRegistrarService(
	creds ports.CredentialRepository,
	profiles ports.ProfileRepository,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *RegistrarService {
	return &RegistrarService{creds: creds, profiles: profiles, activity: activity, log: log}
}

// RegisterPatient creates a credential and then a Patient profile linked to
// the assigned doctor. If the profile write fails the credential is left in
// place; the orphaned uid is logged.
func (s *RegistrarService) RegisterPatient(ctx context.Context, in ports.RegisterPatientInput) (*domain.Profile, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	email := normalizeEmail(in.Email)

	if first == "" || last == "" || email == "" {
		return nil, fmt.Errorf("%w: first name, last name and email", domain.ErrMissingFields)
	}
	if len(in.Password) < domain.MinPasswordLength {
		return nil, domain.ErrWeakPassword
	}
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	if in.AssignedDoctorID == "" {
		return nil, domain.ErrDoctorNotAssigned
	}
	if in.DateOfBirth != "" {
		if _, err := time.Parse(domain.VisitDateLayout, in.DateOfBirth); err != nil {
			return nil, fmt.Errorf("%w: date of birth must be YYYY-MM-DD", domain.ErrMissingFields)
		}
	}

	doctor, err := s.profiles.Get(ctx, in.AssignedDoctorID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("register patient: load doctor: %w", err)
	}
	if domain.Role(doctor.Role) != domain.RoleDoctor {
		return nil, domain.ErrDoctorNotFound
	}

	cred, err := createCredential(ctx, s.creds, email, in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		UID:              cred.ID,
		Email:            cred.Email,
		FirstName:        first,
		LastName:         last,
		FullName:         first + " " + last,
		Phone:            in.Phone,
		DateOfBirth:      in.DateOfBirth,
		Gender:           in.Gender,
		Address:          in.Address,
		Role:             string(domain.RolePatient),
		AssignedDoctorID: in.AssignedDoctorID,
		RegisteredBy:     in.RegisteredBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		s.log.Error().Err(err).
			Str("uid", cred.ID).
			Str("registered_by", in.RegisteredBy).
			Msg("credential created but patient profile write failed")
		return nil, fmt.Errorf("register patient: create profile: %w", err)
	}

	s.activity.Record(domain.Activity{
		Kind:       domain.ActivityPatientRegistered,
		ActorID:    in.RegisteredBy,
		SubjectID:  cred.ID,
		Detail:     in.AssignedDoctorID,
		OccurredAt: now,
	})
	s.log.Info().Str("uid", cred.ID).Str("doctor_id", in.AssignedDoctorID).Msg("patient registered")

	return profile, nil
}

// ListDoctors returns every Doctor profile for the assignment picker.
func (s *RegistrarService) ListDoctors(ctx context.Context) ([]domain.DoctorSummary, error) {
	doctors, err := s.profiles.List(ctx, ports.ProfileFilter{Role: domain.RoleDoctor})
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}

	out := make([]domain.DoctorSummary, 0, len(doctors))
	for _, d := range doctors {
		name := d.FullName
		if name == "" {
			name = "Doctor " + shortID(d.UID)
		}
		out = append(out, domain.DoctorSummary{UID: d.UID, FullName: name})
	}
	return out, nil
}

func shortID(id string) string {
	if len(id) > 5 {
		return id[:5]
	}
	return id
}
