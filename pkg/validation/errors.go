package validation

import (
	"errors"
	"fmt"
	"strings"

	"staffing-site-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// MsgExpectedString is reported for fields whose JSON value is not a string
const MsgExpectedString = "Expected string"

// FieldMessages maps contact form fields to the message shown next to the input
var FieldMessages = map[string]string{
	"firstName": "First name is required",
	"lastName":  "Last name is required",
	"email":     "Please enter a valid email address",
	"company":   "Company name is required",
	"service":   "Please select a service",
	"message":   "Message must be at least 10 characters long",
}

// FormatValidationErrors converts validator.ValidationErrors to per-field messages
func FormatValidationErrors(err error) []domain.FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []domain.FieldError{{Message: err.Error()}}
	}

	fields := make([]domain.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, domain.FieldError{
			Field:   e.Field(),
			Message: formatSingleError(e),
		})
	}
	return fields
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	if msg, ok := FieldMessages[e.Field()]; ok {
		return msg
	}

	label := formatCamelCase(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Fields(param), ", "))
	case "email":
		return "Please enter a valid email address"
	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

// formatCamelCase converts camelCase to capitalised spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i == 0 {
			result.WriteString(strings.ToUpper(string(r)))
			continue
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
			r = r + ('a' - 'A')
		}
		result.WriteRune(r)
	}
	return result.String()
}
