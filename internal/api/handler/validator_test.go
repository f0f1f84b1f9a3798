package handler

import (
	"strings"
	"testing"
)

func TestValidator_UsesJSONNames(t *testing.T) {
	v := NewValidator()
	dob := "12/31/1990"
	long := strings.Repeat("x", 121)

	err := v.Validate(&updateProfileRequest{DateOfBirth: &dob, FullName: &long})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "date_of_birth must be a date in YYYY-MM-DD format") {
		t.Fatalf("unexpected message: %s", msg)
	}
	if !strings.Contains(msg, "full_name must be at most 120 characters") {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestValidator_AcceptsEmptyOptionalFields(t *testing.T) {
	if err := NewValidator().Validate(&updateProfileRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
