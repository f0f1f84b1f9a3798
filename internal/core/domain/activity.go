package domain

import "time"

// ActivityKind names a portal action recorded in the activity log.
type ActivityKind string

const (
	ActivityLogin             ActivityKind = "login"
	ActivityLoginRejected     ActivityKind = "login_rejected"
	ActivityLogout            ActivityKind = "logout"
	ActivitySelfRegistered    ActivityKind = "self_registered"
	ActivityPatientRegistered ActivityKind = "patient_registered"
	ActivityProfileUpdated    ActivityKind = "profile_updated"
	ActivityVisitRecorded     ActivityKind = "visit_recorded"
)

// Activity is one entry of the audit trail.
type Activity struct {
	Kind       ActivityKind
	ActorID    string
	SubjectID  string
	Detail     string
	OccurredAt time.Time
}
