// Package validation provides input validation utilities.
package validation

import (
	"fmt"
	"strings"

	"chirp/internal/models"
)

// MinPasswordLen is the minimum length for a newly chosen password.
const MinPasswordLen = 6

// ValidateEmail checks basic email shape. The contract is intentionally
// loose: an address must contain "@" with something on both sides.
func ValidateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("please enter a valid email")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	return nil
}

// ValidateNewPassword checks the minimum length for a password change.
func ValidateNewPassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("new password must be at least %d characters", MinPasswordLen)
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}
	return nil
}

// ValidatePostText bounds post and comment text length.
func ValidatePostText(text string) error {
	if len(text) > models.MaxPostTextLen {
		return fmt.Errorf("text must not exceed %d characters", models.MaxPostTextLen)
	}
	return nil
}
