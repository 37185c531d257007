// Package validation provides input validation for signup and profile
// fields. All failures are validation errors carrying a field-level
// message; nothing is ever partially applied on failure.
package validation

import (
	"regexp"
	"strings"

	"agora/internal/models"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateUsername checks if a username meets requirements.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return models.NewValidationError("Username is required")
	}
	if len(username) < 3 {
		return models.NewValidationError("Username must be at least 3 characters")
	}
	if len(username) > 20 {
		return models.NewValidationError("Username must be at most 20 characters")
	}
	if !usernameRegex.MatchString(username) {
		return models.NewValidationError("Username can only contain letters, numbers, underscores, and hyphens")
	}
	return nil
}

// ValidatePassword checks if a password meets requirements.
func ValidatePassword(password string) error {
	if password == "" {
		return models.NewValidationError("Password is required")
	}
	if len(password) < 6 {
		return models.NewValidationError("Password must be at least 6 characters")
	}
	if len(password) > 50 {
		return models.NewValidationError("Password must be at most 50 characters")
	}
	return nil
}

// ValidateEmail checks basic email format. Email is optional; an empty
// value passes.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if len(email) > 254 {
		return models.NewValidationError("Email must not exceed 254 characters")
	}
	if !emailRegex.MatchString(email) {
		return models.NewValidationError("Invalid email format")
	}
	return nil
}
