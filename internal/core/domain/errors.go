package domain

import "errors"

// Authentication and session errors.
var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleUndefined      = errors.New("role is not configured for redirection")
	ErrSessionRevoked     = errors.New("session revoked")
	ErrForbidden          = errors.New("access forbidden")
)

// Profile and registration errors.
var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrEmailInUse         = errors.New("email already in use")
	ErrMissingFields      = errors.New("missing required fields")
	ErrWeakPassword       = errors.New("password too weak")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrDoctorNotAssigned  = errors.New("doctor not assigned")
	ErrDoctorNotFound     = errors.New("assigned doctor not found")
)

// Visit errors.
var (
	ErrPatientNotFound  = errors.New("patient not found")
	ErrNotAPatient      = errors.New("profile is not a patient")
	ErrInvalidVisitDate = errors.New("invalid visit date")
)
