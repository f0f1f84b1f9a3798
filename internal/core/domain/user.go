package domain

import "time"

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// Credential is the authentication record for a user. It is kept apart from
// the profile, which holds everything the portal displays.
type Credential struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the per-user document in the users collection. Role decides the
// dashboard and navigation the user resolves to.
type Profile struct {
	UID              string    `json:"uid"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	FirstName        string    `json:"first_name,omitempty"`
	LastName         string    `json:"last_name,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	DateOfBirth      string    `json:"date_of_birth,omitempty"`
	Gender           string    `json:"gender,omitempty"`
	Address          string    `json:"address,omitempty"`
	Role             string    `json:"role"`
	AssignedDoctorID string    `json:"assigned_doctor_id,omitempty"`
	RegisteredBy     string    `json:"registered_by,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsPatient reports whether the profile is tagged with the Patient role.
func (p *Profile) IsPatient() bool {
	return p != nil && Role(p.Role) == RolePatient
}

// ProfilePatch carries the self-service fields of a profile. Nil fields are
// left untouched on save.
type ProfilePatch struct {
	FullName    *string
	Phone       *string
	DateOfBirth *string
	Gender      *string
	Address     *string
}

// Empty reports whether the patch carries no field at all.
func (p ProfilePatch) Empty() bool {
	return p.FullName == nil && p.Phone == nil && p.DateOfBirth == nil && p.Gender == nil && p.Address == nil
}

// DoctorSummary is the compact doctor view used when assigning patients.
type DoctorSummary struct {
	UID      string `json:"uid"`
	FullName string `json:"full_name"`
}
