package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission results
const (
	ResultStored  = "stored"
	ResultInvalid = "invalid"
	ResultFailed  = "failed"
)

// Email delivery results
const (
	EmailSent    = "sent"
	EmailFailed  = "failed"
	EmailSkipped = "skipped"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	Submissions *prometheus.CounterVec
	Emails      *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Contact form submissions by outcome",
		}, []string{"result"}),
		Emails: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_emails_total",
			Help: "Best-effort contact emails by kind and delivery result",
		}, []string{"kind", "result"}),
	}
}

// RecordSubmission increments the submissions counter for result.
// Safe to call on a nil *Metrics.
func (m *Metrics) RecordSubmission(result string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(result).Inc()
}

// RecordEmail increments the email counter for kind and result
func (m *Metrics) RecordEmail(kind, result string) {
	if m == nil {
		return
	}
	m.Emails.WithLabelValues(kind, result).Inc()
}
