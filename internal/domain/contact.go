package domain

import (
	"context"
	"time"

	"staffing-site-backend/pkg/email"
)

// ServiceInterest is the service a prospective client is asking about
type ServiceInterest string

const (
	ServiceStaffing     ServiceInterest = "staffing"
	ServiceExecutive    ServiceInterest = "executive"
	ServiceBoth         ServiceInterest = "both"
	ServiceConsultation ServiceInterest = "consultation"
)

var serviceLabels = map[ServiceInterest]string{
	ServiceStaffing:     "Staffing Solutions",
	ServiceExecutive:    "Executive Search",
	ServiceBoth:         "Both Services",
	ServiceConsultation: "Consultation",
}

// Label returns the human-readable name used in emails
func (s ServiceInterest) Label() string {
	if label, ok := serviceLabels[s]; ok {
		return label
	}
	return string(s)
}

// ContactInquiry is a validated contact form submission
type ContactInquiry struct {
	FirstName string          `json:"firstName" validate:"required"`
	LastName  string          `json:"lastName" validate:"required"`
	Email     string          `json:"email" validate:"required,email"`
	Company   string          `json:"company" validate:"required"`
	Service   ServiceInterest `json:"service" validate:"required,oneof=staffing executive both consultation"`
	Message   string          `json:"message" validate:"required,min=10"`
}

// FullName joins first and last name
func (i ContactInquiry) FullName() string {
	return i.FirstName + " " + i.LastName
}

// ContactSubmission is a persisted inquiry. Immutable once stored.
type ContactSubmission struct {
	ID string `json:"id"`
	ContactInquiry
	CreatedAt time.Time `json:"createdAt"`
}

// FieldError describes one failing form field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field that failed validation
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "invalid form data"
}

// HasField reports whether the named field failed
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// DeliveryOutcome records the result of a single best-effort email
type DeliveryOutcome struct {
	Attempted bool
	Err       error
}

// Delivered reports whether the email was handed to the transport successfully
func (o DeliveryOutcome) Delivered() bool {
	return o.Attempted && o.Err == nil
}

// SubmissionResult is returned by a successful relay
type SubmissionResult struct {
	Submission     *ContactSubmission
	Notification   DeliveryOutcome
	Acknowledgment DeliveryOutcome
}

// ContactRepository persists contact submissions
type ContactRepository interface {
	// Create stores the inquiry and returns the record with its assigned ID
	Create(ctx context.Context, inquiry *ContactInquiry) (*ContactSubmission, error)
	// List returns every stored submission, oldest first
	List(ctx context.Context) ([]ContactSubmission, error)
	Ping(ctx context.Context) error
}

// Mailer delivers a single email message
type Mailer interface {
	Send(ctx context.Context, msg *email.Message) error
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// Validate checks untrusted form input and returns a validated inquiry or a *ValidationError
	Validate(input map[string]any) (*ContactInquiry, error)
	// Submit persists the inquiry and makes best-effort notification and acknowledgment deliveries
	Submit(ctx context.Context, inquiry *ContactInquiry) (*SubmissionResult, error)
	// ListSubmissions returns every stored submission, oldest first
	ListSubmissions(ctx context.Context) ([]ContactSubmission, error)
}
