package ports

import (
	"context"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
)

// ActivityRepository persists the audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
}

// ActivityRecorder accepts activities for asynchronous processing. Record
// must not block the caller on persistence.
type ActivityRecorder interface {
	Record(a domain.Activity)
}

// ActivityService processes a single activity once it is dequeued.
type ActivityService interface {
	Process(ctx context.Context, a domain.Activity) error
}

// Mailer delivers transactional e-mail.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
