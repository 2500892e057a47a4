package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordSubmission(ResultStored)
	m.RecordSubmission(ResultStored)
	m.RecordSubmission(ResultInvalid)
	m.RecordEmail("notification", EmailSent)
	m.RecordEmail("acknowledgment", EmailFailed)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Submissions.WithLabelValues(ResultStored)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues(ResultInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Emails.WithLabelValues("notification", EmailSent)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Emails.WithLabelValues("acknowledgment", EmailFailed)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordSubmission(ResultFailed)
		m.RecordEmail("notification", EmailSkipped)
	})
}
