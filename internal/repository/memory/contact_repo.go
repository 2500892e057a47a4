// Package memory keeps contact submissions in process memory. Used when no database is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"staffing-site-backend/internal/domain"

	"github.com/google/uuid"
)

var _ domain.ContactRepository = (*ContactRepository)(nil)

type ContactRepository struct {
	mu          sync.RWMutex
	submissions []domain.ContactSubmission
	now         func() time.Time
}

func NewContactRepository() *ContactRepository {
	return &ContactRepository{now: time.Now}
}

func (r *ContactRepository) Create(_ context.Context, inquiry *domain.ContactInquiry) (*domain.ContactSubmission, error) {
	submission := domain.ContactSubmission{
		ID:             uuid.NewString(),
		ContactInquiry: *inquiry,
		CreatedAt:      r.now().UTC(),
	}

	r.mu.Lock()
	r.submissions = append(r.submissions, submission)
	r.mu.Unlock()

	return &submission, nil
}

// List returns a copy in insertion order
func (r *ContactRepository) List(_ context.Context) ([]domain.ContactSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ContactSubmission, len(r.submissions))
	copy(out, r.submissions)
	return out, nil
}

func (r *ContactRepository) Ping(_ context.Context) error {
	return nil
}
