//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"staffing-site-backend/internal/domain"
	"staffing-site-backend/internal/repository/postgres"
	"staffing-site-backend/pkg/testutil/containers"

	"github.com/stretchr/testify/suite"
)

type ContactRepositorySuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	repo     *postgres.ContactRepository
}

func TestContactRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ContactRepositorySuite))
}

func (s *ContactRepositorySuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.repo = postgres.NewContactRepository(s.postgres.Pool)

	ctx := context.Background()
	s.Require().NoError(s.repo.EnsureSchema(ctx))
	s.Require().NoError(s.repo.EnsureSchema(ctx), "schema creation is idempotent")
}

func (s *ContactRepositorySuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "contact_submissions"))
}

func newInquiry(firstName string, service domain.ServiceInterest) *domain.ContactInquiry {
	return &domain.ContactInquiry{
		FirstName: firstName,
		LastName:  "Doe",
		Email:     "john@x.com",
		Company:   "Acme",
		Service:   service,
		Message:   "We need a CFO",
	}
}

func (s *ContactRepositorySuite) TestCreateAssignsIDAndTimestamp() {
	ctx := context.Background()
	before := time.Now().Add(-time.Minute)

	submission, err := s.repo.Create(ctx, newInquiry("John", domain.ServiceExecutive))
	s.Require().NoError(err)
	s.NotEmpty(submission.ID)
	s.True(submission.CreatedAt.After(before), "created_at comes from the database")
	s.Equal("John", submission.FirstName)
	s.Equal(domain.ServiceExecutive, submission.Service)
}

func (s *ContactRepositorySuite) TestListReturnsOldestFirst() {
	ctx := context.Background()

	empty, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)

	first, err := s.repo.Create(ctx, newInquiry("John", domain.ServiceStaffing))
	s.Require().NoError(err)
	second, err := s.repo.Create(ctx, newInquiry("Jane", domain.ServiceConsultation))
	s.Require().NoError(err)

	listed, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(listed, 2)
	s.Equal(first.ID, listed[0].ID)
	s.Equal(second.ID, listed[1].ID)
	s.Equal("Jane", listed[1].FirstName)
	s.Equal(domain.ServiceConsultation, listed[1].Service)
	s.Equal(first.CreatedAt.UnixMicro(), listed[0].CreatedAt.UnixMicro())
}

func (s *ContactRepositorySuite) TestRejectsUnknownService() {
	_, err := s.repo.Create(context.Background(), newInquiry("John", domain.ServiceInterest("temp")))
	s.Require().Error(err)
	s.Contains(err.Error(), "insert contact submission")

	listed, err := s.repo.List(context.Background())
	s.Require().NoError(err)
	s.Empty(listed)
}

func (s *ContactRepositorySuite) TestPing() {
	s.NoError(s.repo.Ping(context.Background()))
}
