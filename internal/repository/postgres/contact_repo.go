package postgres

import (
	"context"
	"fmt"
	"staffing-site-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const contactSchema = `CREATE TABLE IF NOT EXISTS contact_submissions (
	id          UUID PRIMARY KEY,
	first_name  TEXT NOT NULL,
	last_name   TEXT NOT NULL,
	email       TEXT NOT NULL,
	company     TEXT NOT NULL,
	service     TEXT NOT NULL CHECK (service IN ('staffing', 'executive', 'both', 'consultation')),
	message     TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

var _ domain.ContactRepository = (*ContactRepository)(nil)

type ContactRepository struct {
	db *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{db: db}
}

// EnsureSchema creates the contact_submissions table if it does not exist
func (r *ContactRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, contactSchema); err != nil {
		return fmt.Errorf("create contact_submissions table: %w", err)
	}
	return nil
}

func (r *ContactRepository) Create(ctx context.Context, inquiry *domain.ContactInquiry) (*domain.ContactSubmission, error) {
	submission := &domain.ContactSubmission{
		ID:             uuid.NewString(),
		ContactInquiry: *inquiry,
	}

	query := `INSERT INTO contact_submissions (id, first_name, last_name, email, company, service, message)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              RETURNING created_at`
	err := r.db.QueryRow(ctx, query,
		submission.ID, inquiry.FirstName, inquiry.LastName, inquiry.Email,
		inquiry.Company, string(inquiry.Service), inquiry.Message,
	).Scan(&submission.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert contact submission: %w", err)
	}
	return submission, nil
}

func (r *ContactRepository) List(ctx context.Context) ([]domain.ContactSubmission, error) {
	query := `SELECT id, first_name, last_name, email, company, service, message, created_at
              FROM contact_submissions ORDER BY created_at, id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query contact submissions: %w", err)
	}
	defer rows.Close()

	submissions := []domain.ContactSubmission{}
	for rows.Next() {
		var s domain.ContactSubmission
		var service string
		if err := rows.Scan(
			&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Company, &service, &s.Message, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contact submission: %w", err)
		}
		s.Service = domain.ServiceInterest(service)
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact submissions: %w", err)
	}
	return submissions, nil
}

func (r *ContactRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
