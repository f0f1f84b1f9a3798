package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
)

const welcomeSubject = "Welcome to Clinic Navigator"

type activityService struct {
	repo     ports.ActivityRepository
	profiles ports.ProfileRepository
	mailer   ports.Mailer
	log      zerolog.Logger
}

// NewActivityService returns an ActivityService. mailer may be nil, in which
// case no e-mail is sent.
func NewActivityService(
	repo ports.ActivityRepository,
	profiles ports.ProfileRepository,
	mailer ports.Mailer,
	log zerolog.Logger,
) ports.ActivityService {
	return &activityService{repo: repo, profiles: profiles, mailer: mailer, log: log}
}

// Process persists the activity and runs its side effects.
func (s *activityService) Process(ctx context.Context, a domain.Activity) error {
	if err := s.repo.Insert(ctx, &a); err != nil {
		return fmt.Errorf("process activity: %w", err)
	}

	if a.Kind == domain.ActivityPatientRegistered && s.mailer != nil {
		s.sendWelcome(ctx, a.SubjectID)
	}
	return nil
}

// sendWelcome mails a newly registered patient. Failures are logged only.
func (s *activityService) sendWelcome(ctx context.Context, uid string) {
	p, err := s.profiles.Get(ctx, uid)
	if err != nil {
		s.log.Warn().Err(err).Str("uid", uid).Msg("welcome mail skipped, profile unavailable")
		return
	}
	if p.Email == "" {
		return
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nAn account has been created for you at the clinic. "+
			"You can now log in with %s to see your appointments and records.\n",
		p.FullName, p.Email,
	)
	if err := s.mailer.Send(ctx, p.Email, welcomeSubject, body); err != nil {
		s.log.Warn().Err(err).Str("uid", uid).Msg("failed to send welcome mail")
	}
}
