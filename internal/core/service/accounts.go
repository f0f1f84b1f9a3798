package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
)

var validate = validator.New()

// normalizeEmail lower-cases and trims an address so lookups are stable.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// createCredential validates and stores a new credential with a fresh uid.
func createCredential(ctx context.Context, repo ports.CredentialRepository, email, password string) (*domain.Credential, error) {
	if !validEmail(email) {
		return nil, domain.ErrInvalidEmail
	}
	if len(password) < domain.MinPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	cred := &domain.Credential{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(ctx, cred); err != nil {
		return nil, err
	}
	return cred, nil
}
