package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"staffing-site-backend/internal/domain"
	"staffing-site-backend/pkg/apperror"
	"staffing-site-backend/pkg/email"
	"staffing-site-backend/pkg/metrics"
	"staffing-site-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const (
	mailKindNotification   = "notification"
	mailKindAcknowledgment = "acknowledgment"

	submittedAtLayout = "January 2, 2006 at 3:04 PM MST"
)

// contactFields lists form fields in the order errors are reported
var contactFields = []string{"firstName", "lastName", "email", "company", "service", "message"}

// MailSettings addresses the relay's outgoing emails
type MailSettings struct {
	From        string // sender for both emails
	OperatorTo  string // inbox receiving new-submission notices
	CompanyName string
}

type contactUsecase struct {
	repo     domain.ContactRepository
	mailer   domain.Mailer // nil when SMTP is not configured
	validate *validator.Validate
	settings MailSettings
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// NewContactUsecase creates a new contact usecase. A nil mailer disables email delivery.
func NewContactUsecase(
	repo domain.ContactRepository,
	mailer domain.Mailer,
	validate *validator.Validate,
	settings MailSettings,
	m *metrics.Metrics,
	log *slog.Logger,
) domain.ContactUsecase {
	return &contactUsecase{
		repo:     repo,
		mailer:   mailer,
		validate: validate,
		settings: settings,
		metrics:  m,
		log:      log,
	}
}

// Validate builds an inquiry from decoded JSON and checks every field.
// All failing fields are reported together.
func (uc *contactUsecase) Validate(input map[string]any) (*domain.ContactInquiry, error) {
	failed := make(map[string]string)

	str := func(key string) string {
		v, ok := input[key]
		if !ok || v == nil {
			return ""
		}
		s, ok := v.(string)
		if !ok {
			failed[key] = validation.MsgExpectedString
			return ""
		}
		return s
	}

	inquiry := &domain.ContactInquiry{
		FirstName: str("firstName"),
		LastName:  str("lastName"),
		Email:     str("email"),
		Company:   str("company"),
		Service:   domain.ServiceInterest(str("service")),
		Message:   str("message"),
	}

	if err := uc.validate.Struct(inquiry); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return nil, fmt.Errorf("validate contact inquiry: %w", err)
		}
		for _, fe := range validation.FormatValidationErrors(err) {
			if _, seen := failed[fe.Field]; !seen {
				failed[fe.Field] = fe.Message
			}
		}
	}

	if len(failed) == 0 {
		return inquiry, nil
	}

	verr := &domain.ValidationError{}
	for _, field := range contactFields {
		if msg, ok := failed[field]; ok {
			verr.Fields = append(verr.Fields, domain.FieldError{Field: field, Message: msg})
		}
	}
	uc.metrics.RecordSubmission(metrics.ResultInvalid)
	return nil, verr
}

// Submit persists the inquiry and then attempts both emails.
// Only a storage failure fails the call.
func (uc *contactUsecase) Submit(ctx context.Context, inquiry *domain.ContactInquiry) (*domain.SubmissionResult, error) {
	submission, err := uc.repo.Create(ctx, inquiry)
	if err != nil {
		uc.metrics.RecordSubmission(metrics.ResultFailed)
		return nil, apperror.New(http.StatusInternalServerError, "Failed to submit contact form",
			fmt.Errorf("store contact submission: %w", err))
	}
	uc.metrics.RecordSubmission(metrics.ResultStored)

	data := email.InquiryEmailData{
		CompanyName:  uc.settings.CompanyName,
		FirstName:    submission.FirstName,
		LastName:     submission.LastName,
		Email:        submission.Email,
		Company:      submission.Company,
		ServiceLabel: submission.Service.Label(),
		Message:      submission.Message,
		SubmittedAt:  submission.CreatedAt.Format(submittedAtLayout),
	}

	result := &domain.SubmissionResult{Submission: submission}
	result.Notification = uc.deliver(ctx, mailKindNotification, submission.ID, func() (*email.Message, error) {
		return uc.notification(data)
	})
	result.Acknowledgment = uc.deliver(ctx, mailKindAcknowledgment, submission.ID, func() (*email.Message, error) {
		return uc.acknowledgment(data)
	})
	return result, nil
}

// ListSubmissions returns every stored submission, oldest first
func (uc *contactUsecase) ListSubmissions(ctx context.Context) ([]domain.ContactSubmission, error) {
	submissions, err := uc.repo.List(ctx)
	if err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Failed to retrieve contact submissions",
			fmt.Errorf("list contact submissions: %w", err))
	}
	if submissions == nil {
		submissions = []domain.ContactSubmission{}
	}
	return submissions, nil
}

func (uc *contactUsecase) notification(data email.InquiryEmailData) (*email.Message, error) {
	text, html, err := email.RenderNotification(data)
	if err != nil {
		return nil, err
	}
	return &email.Message{
		From:    uc.settings.From,
		To:      uc.settings.OperatorTo,
		ReplyTo: data.Email,
		Subject: fmt.Sprintf("New Contact Form Submission from %s %s", data.FirstName, data.LastName),
		Text:    text,
		HTML:    html,
	}, nil
}

func (uc *contactUsecase) acknowledgment(data email.InquiryEmailData) (*email.Message, error) {
	text, html, err := email.RenderAcknowledgment(data)
	if err != nil {
		return nil, err
	}
	return &email.Message{
		From:    uc.settings.From,
		To:      data.Email,
		Subject: fmt.Sprintf("Thank you for contacting %s", uc.settings.CompanyName),
		Text:    text,
		HTML:    html,
	}, nil
}

// deliver makes one best-effort delivery and captures its outcome. Failures are logged, never returned.
func (uc *contactUsecase) deliver(ctx context.Context, kind, submissionID string, build func() (*email.Message, error)) domain.DeliveryOutcome {
	if uc.mailer == nil {
		uc.log.Warn("Email service not configured, skipping email", "kind", kind, "submission_id", submissionID)
		uc.metrics.RecordEmail(kind, metrics.EmailSkipped)
		return domain.DeliveryOutcome{}
	}

	msg, err := build()
	if err != nil {
		uc.log.Error("Failed to compose email", "kind", kind, "submission_id", submissionID, "error", err)
		uc.metrics.RecordEmail(kind, metrics.EmailFailed)
		return domain.DeliveryOutcome{Err: err}
	}

	if err := uc.mailer.Send(ctx, msg); err != nil {
		uc.log.Error("Failed to send email", "kind", kind, "to", msg.To, "submission_id", submissionID, "error", err)
		uc.metrics.RecordEmail(kind, metrics.EmailFailed)
		return domain.DeliveryOutcome{Attempted: true, Err: err}
	}

	uc.log.Info("Contact email sent successfully", "kind", kind, "to", msg.To, "submission_id", submissionID)
	uc.metrics.RecordEmail(kind, metrics.EmailSent)
	return domain.DeliveryOutcome{Attempted: true}
}
