package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
)

// VisitService appends consultation notes and lists a patient's history.
type VisitService struct {
	visits   ports.VisitRepository
	profiles ports.ProfileRepository
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewVisitService(
	visits ports.VisitRepository,
	profiles ports.ProfileRepository,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *VisitService {
	return &VisitService{visits: visits, profiles: profiles, activity: activity, log: log}
}

// RecordVisit inserts exactly one visit for an existing patient.
func (s *VisitService) RecordVisit(ctx context.Context, in ports.RecordVisitInput) (*domain.Visit, error) {
	if in.PatientID == "" || in.DoctorID == "" || in.VisitDate == "" {
		return nil, fmt.Errorf("%w: patient, doctor and visit date", domain.ErrMissingFields)
	}
	visitDate, err := domain.ParseVisitDate(in.VisitDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.loadPatient(ctx, in.PatientID); err != nil {
		return nil, fmt.Errorf("record visit: %w", err)
	}

	v := &domain.Visit{
		ID:            uuid.NewString(),
		PatientID:     in.PatientID,
		DoctorID:      in.DoctorID,
		VisitDate:     visitDate,
		Vitals:        in.Vitals,
		Symptoms:      in.Symptoms,
		Diagnosis:     in.Diagnosis,
		TreatmentPlan: in.TreatmentPlan,
		Notes:         in.Notes,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.visits.Insert(ctx, v); err != nil {
		s.log.Error().Err(err).Str("patient_id", in.PatientID).Msg("failed to save visit")
		return nil, fmt.Errorf("record visit: %w", err)
	}

	s.activity.Record(domain.Activity{
		Kind:       domain.ActivityVisitRecorded,
		ActorID:    in.DoctorID,
		SubjectID:  in.PatientID,
		Detail:     v.ID,
		OccurredAt: v.CreatedAt,
	})
	return v, nil
}

// ListVisits returns a patient's visits, newest visit date first. Patients
// may only read their own history.
func (s *VisitService) ListVisits(ctx context.Context, in ports.ListVisitsInput) ([]*domain.Visit, error) {
	switch domain.Role(in.CallerRole) {
	case domain.RoleDoctor, domain.RoleNurse, domain.RoleAdmin:
	case domain.RolePatient:
		if in.CallerID != in.PatientID {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}

	if _, err := s.loadPatient(ctx, in.PatientID); err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}

	visits, err := s.visits.ListByPatient(ctx, in.PatientID)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	return visits, nil
}

func (s *VisitService) loadPatient(ctx context.Context, id string) (*domain.Profile, error) {
	p, err := s.profiles.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, err
	}
	if !p.IsPatient() {
		return nil, domain.ErrNotAPatient
	}
	return p, nil
}
