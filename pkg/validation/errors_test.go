package validation

import (
	"errors"
	"testing"

	"staffing-site-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type newsletterSignup struct {
	PreferredName string `json:"preferredName" validate:"required"`
	Frequency     string `json:"frequency" validate:"oneof=daily weekly"`
	Internal      string `json:"-" validate:"required"`
}

func TestFormatValidationErrorsUsesContactMessages(t *testing.T) {
	err := New().Struct(domain.ContactInquiry{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "nope",
		Company:   "Acme",
		Service:   "freelance",
		Message:   "short",
	})
	require.Error(t, err)

	fields := FormatValidationErrors(err)
	assert.Equal(t, []domain.FieldError{
		{Field: "email", Message: "Please enter a valid email address"},
		{Field: "service", Message: "Please select a service"},
		{Field: "message", Message: "Message must be at least 10 characters long"},
	}, fields)
}

func TestFormatValidationErrorsFallbacks(t *testing.T) {
	err := New().Struct(newsletterSignup{Frequency: "hourly", Internal: ""})
	require.Error(t, err)

	fields := FormatValidationErrors(err)
	require.Len(t, fields, 3)
	assert.Equal(t, domain.FieldError{Field: "preferredName", Message: "Preferred name is required"}, fields[0])
	assert.Equal(t, domain.FieldError{Field: "frequency", Message: "Frequency must be one of: daily, weekly"}, fields[1])
	assert.Equal(t, "Internal", fields[2].Field, "fields hidden from JSON keep their Go name")
}

func TestFormatValidationErrorsNonValidatorError(t *testing.T) {
	fields := FormatValidationErrors(errors.New("boom"))
	assert.Equal(t, []domain.FieldError{{Message: "boom"}}, fields)
}
