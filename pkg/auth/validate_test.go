// pkg/auth/validate_test.go
package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	policy := NewPasswordPolicy()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid password", "Sunny2024", false},
		{"too short", "Ab1", true},
		{"no uppercase", "sunny2024", true},
		{"no lowercase", "SUNNY2024", true},
		{"no number", "SunnyDays", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.ValidatePassword(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrWeakPassword)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "student@example.com", false},
		{"subdomain", "a.b@mail.school.edu", false},
		{"missing at", "studentexample.com", true},
		{"missing tld", "student@example", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	assert.NoError(t, ValidatePhoneNumber("+8613900000000"))
	assert.NoError(t, ValidatePhoneNumber("13900000000"))
	assert.Error(t, ValidatePhoneNumber("123"))
	assert.Error(t, ValidatePhoneNumber("phone"))
	assert.Error(t, ValidatePhoneNumber(""))
}
