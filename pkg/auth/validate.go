// pkg/auth/validate.go
package auth

import (
	"errors"
	"fmt"
	"regexp"
	"unicode"
)

var (
	ErrWeakPassword = errors.New("password does not meet requirements")
)

// PasswordPolicy validates passwords locally before any remote call.
type PasswordPolicy struct {
	minLength     int
	requireUpper  bool
	requireLower  bool
	requireNumber bool
}

// NewPasswordPolicy creates a policy with default settings.
func NewPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{
		minLength:     8,
		requireUpper:  true,
		requireLower:  true,
		requireNumber: true,
	}
}

// ValidatePassword checks if a password meets the requirements.
func (pp *PasswordPolicy) ValidatePassword(password string) error {
	if len(password) < pp.minLength {
		return fmt.Errorf("%w: minimum length is %d characters", ErrWeakPassword, pp.minLength)
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasNumber = true
		}
	}

	if pp.requireUpper && !hasUpper {
		return fmt.Errorf("%w: must contain at least one uppercase letter", ErrWeakPassword)
	}
	if pp.requireLower && !hasLower {
		return fmt.Errorf("%w: must contain at least one lowercase letter", ErrWeakPassword)
	}
	if pp.requireNumber && !hasNumber {
		return fmt.Errorf("%w: must contain at least one number", ErrWeakPassword)
	}

	return nil
}

// ValidateEmail validates an email address format.
func ValidateEmail(email string) error {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	if !emailRegex.MatchString(email) {
		return errors.New("invalid email format")
	}

	if len(email) > 255 {
		return errors.New("email address too long")
	}

	return nil
}

// ValidatePhoneNumber checks the loosely E.164-shaped numbers the SMS
// channel accepts.
func ValidatePhoneNumber(phone string) error {
	phoneRegex := regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	if !phoneRegex.MatchString(phone) {
		return errors.New("invalid phone number format")
	}
	return nil
}
