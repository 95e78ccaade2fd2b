package store

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/suite"

	"ballotbox/internal/roster/models"
	id "ballotbox/pkg/domain"
	"ballotbox/pkg/platform/sentinel"
)

type rosterStore interface {
	Create(ctx context.Context, student models.Student) error
	Update(ctx context.Context, student models.Student) error
	Delete(ctx context.Context, voterID id.VoterID) error
	Get(ctx context.Context, voterID id.VoterID) (*models.Student, error)
	List(ctx context.Context) ([]models.Student, error)
}

// StoreContractSuite runs the same behavior checks against every backend.
type StoreContractSuite struct {
	suite.Suite
	newStore func() rosterStore
	store    rosterStore
	ctx      context.Context
}

func (s *StoreContractSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore()
}

func student(voterID, name string) models.Student {
	return models.Student{
		ID:           id.VoterID(voterID),
		Name:         name,
		Email:        "student@university.edu",
		Department:   "Engineering",
		Year:         "2nd Year",
		RegisteredAt: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
		Status:       models.StudentActive,
	}
}

func (s *StoreContractSuite) TestCreateAndGet() {
	s.Require().NoError(s.store.Create(s.ctx, student("STU001234", "Sarah Johnson")))

	got, err := s.store.Get(s.ctx, "STU001234")
	s.Require().NoError(err)
	s.Equal("Sarah Johnson", got.Name)
	s.Equal("2nd Year", got.Year)
	s.True(got.RegisteredAt.Equal(time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)))
}

func (s *StoreContractSuite) TestCreateDuplicateConflicts() {
	s.Require().NoError(s.store.Create(s.ctx, student("STU001234", "Sarah Johnson")))
	err := s.store.Create(s.ctx, student("STU001234", "Someone Else"))
	s.True(errors.Is(err, sentinel.ErrConflict))
}

func (s *StoreContractSuite) TestGetMissing() {
	_, err := s.store.Get(s.ctx, "STU999999")
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *StoreContractSuite) TestUpdateKeepsRegistrationDate() {
	s.Require().NoError(s.store.Create(s.ctx, student("STU001234", "Sarah Johnson")))

	changed := student("STU001234", "Sarah J. Johnson")
	changed.Status = models.StudentInactive
	changed.RegisteredAt = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Update(s.ctx, changed))

	got, err := s.store.Get(s.ctx, "STU001234")
	s.Require().NoError(err)
	s.Equal("Sarah J. Johnson", got.Name)
	s.Equal(models.StudentInactive, got.Status)
	s.Equal(2026, got.RegisteredAt.Year())
}

func (s *StoreContractSuite) TestUpdateMissing() {
	err := s.store.Update(s.ctx, student("STU999999", "Nobody"))
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *StoreContractSuite) TestDelete() {
	s.Require().NoError(s.store.Create(s.ctx, student("STU001234", "Sarah Johnson")))
	s.Require().NoError(s.store.Delete(s.ctx, "STU001234"))

	_, err := s.store.Get(s.ctx, "STU001234")
	s.True(errors.Is(err, sentinel.ErrNotFound))
	s.True(errors.Is(s.store.Delete(s.ctx, "STU001234"), sentinel.ErrNotFound))
}

func (s *StoreContractSuite) TestListOrderedByID() {
	s.Require().NoError(s.store.Create(s.ctx, student("STU000003", "Carol")))
	s.Require().NoError(s.store.Create(s.ctx, student("STU000001", "Alice")))
	s.Require().NoError(s.store.Create(s.ctx, student("STU000002", "Bob")))

	list, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal(id.VoterID("STU000001"), list[0].ID)
	s.Equal(id.VoterID("STU000003"), list[2].ID)
}
