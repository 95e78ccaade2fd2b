// Package service manages the student roster: registration, eligibility
// lookups for sign-in, filtered listings and CSV import/export.
package service

import (
	"context"
	"errors"
	"log/slog"

	"ballotbox/internal/roster/models"
	id "ballotbox/pkg/domain"
	dErrors "ballotbox/pkg/domain-errors"
	audit "ballotbox/pkg/platform/audit"
	"ballotbox/pkg/platform/sentinel"
	platformstrings "ballotbox/pkg/platform/strings"
	"ballotbox/pkg/requestcontext"
)

// Store persists students.
type Store interface {
	Create(ctx context.Context, student models.Student) error
	Update(ctx context.Context, student models.Student) error
	Delete(ctx context.Context, voterID id.VoterID) error
	Get(ctx context.Context, voterID id.VoterID) (*models.Student, error)
	List(ctx context.Context) ([]models.Student, error)
}

// Participation reports which voters have a ballot on record.
type Participation interface {
	VoterIDs(ctx context.Context, electionID id.ElectionID) ([]id.VoterID, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	store         Store
	participation Participation
	electionID    id.ElectionID
	auditor       AuditPublisher
	logger        *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = publisher
	}
}

// WithParticipation derives voting status from the ballot ledger of the
// given election. Without it every active student is pending.
func WithParticipation(p Participation, electionID id.ElectionID) Option {
	return func(s *Service) {
		s.participation = p
		s.electionID = electionID
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("roster store is required")
	}
	s := &Service{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Add registers a student. The registration date is the request time.
func (s *Service) Add(ctx context.Context, student models.Student) (*models.StudentView, error) {
	student.Normalize()
	if err := student.Validate(); err != nil {
		return nil, err
	}
	student.RegisteredAt = requestcontext.Now(ctx)

	if err := s.store.Create(ctx, student); err != nil {
		return nil, translate(err, "failed to register student")
	}
	s.logger.InfoContext(ctx, "student registered",
		"student_id", student.ID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emit(ctx, audit.ActionStudentAdded, student.ID.String(), "")
	return s.view(ctx, student)
}

func (s *Service) Get(ctx context.Context, voterID id.VoterID) (*models.StudentView, error) {
	student, err := s.store.Get(ctx, voterID)
	if err != nil {
		return nil, translate(err, "failed to load student")
	}
	return s.view(ctx, *student)
}

// Update applies the requested changes. The student ID and registration
// date never change.
func (s *Service) Update(ctx context.Context, voterID id.VoterID, changes *models.UpdateStudentRequest) (*models.StudentView, error) {
	current, err := s.store.Get(ctx, voterID)
	if err != nil {
		return nil, translate(err, "failed to load student")
	}
	updated := *current
	changes.Apply(&updated)
	updated.Normalize()
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, updated); err != nil {
		return nil, translate(err, "failed to update student")
	}
	detail := ""
	if updated.Status != current.Status {
		detail = string(current.Status) + " -> " + string(updated.Status)
	}
	s.logger.InfoContext(ctx, "student updated",
		"student_id", voterID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emit(ctx, audit.ActionStudentUpdated, voterID.String(), detail)
	return s.view(ctx, updated)
}

func (s *Service) Remove(ctx context.Context, voterID id.VoterID) error {
	if err := s.store.Delete(ctx, voterID); err != nil {
		return translate(err, "failed to remove student")
	}
	s.logger.InfoContext(ctx, "student removed",
		"student_id", voterID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emit(ctx, audit.ActionStudentRemoved, voterID.String(), "")
	return nil
}

// BulkRemove deletes each listed student, reporting IDs that were not
// registered. It stops at the first storage failure.
func (s *Service) BulkRemove(ctx context.Context, rawIDs []string) (removed int, notFound []string, err error) {
	notFound = []string{}
	for _, raw := range platformstrings.DedupeAndTrimUpper(rawIDs) {
		err := s.Remove(ctx, id.VoterID(raw))
		switch {
		case err == nil:
			removed++
		case dErrors.HasCode(err, dErrors.CodeNotFound):
			notFound = append(notFound, raw)
		default:
			return removed, notFound, err
		}
	}
	return removed, notFound, nil
}

// Lookup resolves a voter for sign-in. Unregistered voters are unauthorized;
// inactive students are forbidden.
func (s *Service) Lookup(ctx context.Context, voterID id.VoterID) (string, error) {
	student, err := s.store.Get(ctx, voterID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return "", dErrors.New(dErrors.CodeUnauthorized, "student ID is not registered")
	}
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeStorageUnavailable, "student roster unavailable")
	}
	if student.Status != models.StudentActive {
		return "", dErrors.New(dErrors.CodeForbidden, "student is not eligible to vote")
	}
	return student.Name, nil
}

// Turnout returns how many active students have voted and how many active
// students there are. Votes by students since removed or deactivated are not
// counted, so voted never exceeds eligible.
func (s *Service) Turnout(ctx context.Context) (voted, eligible int, err error) {
	c, err := s.Counts(ctx)
	if err != nil {
		return 0, 0, err
	}
	return c.VotedActive, c.Active, nil
}

// Counts summarizes the roster by voting status.
func (s *Service) Counts(ctx context.Context) (*models.RosterCounts, error) {
	views, err := s.views(ctx)
	if err != nil {
		return nil, err
	}
	c := &models.RosterCounts{Total: len(views)}
	for _, v := range views {
		if v.Status == models.StudentActive {
			c.Active++
			if v.VotingStatus == models.VotingVoted {
				c.VotedActive++
			}
		}
		switch v.VotingStatus {
		case models.VotingVoted:
			c.Voted++
		case models.VotingPending:
			c.Pending++
		case models.VotingInactive:
			c.Inactive++
		}
	}
	return c, nil
}

func (s *Service) views(ctx context.Context) ([]models.StudentView, error) {
	students, err := s.store.List(ctx)
	if err != nil {
		return nil, translate(err, "failed to list students")
	}
	voted, err := s.votedSet(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.StudentView, len(students))
	for i, st := range students {
		_, ok := voted[st.ID]
		out[i] = models.StudentView{Student: st, VotingStatus: models.VotingStatusFor(st, ok)}
	}
	return out, nil
}

func (s *Service) view(ctx context.Context, student models.Student) (*models.StudentView, error) {
	voted, err := s.votedSet(ctx)
	if err != nil {
		return nil, err
	}
	_, ok := voted[student.ID]
	return &models.StudentView{Student: student, VotingStatus: models.VotingStatusFor(student, ok)}, nil
}

func (s *Service) votedSet(ctx context.Context) (map[id.VoterID]struct{}, error) {
	set := map[id.VoterID]struct{}{}
	if s.participation == nil {
		return set, nil
	}
	voters, err := s.participation.VoterIDs(ctx, s.electionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorageUnavailable, "ballot ledger unavailable")
	}
	for _, v := range voters {
		set[v] = struct{}{}
	}
	return set, nil
}

func (s *Service) emit(ctx context.Context, action audit.Action, subject, detail string) {
	if s.auditor == nil {
		return
	}
	event := audit.NewEvent(ctx, action, subject, detail)
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", string(action),
			"error", err,
		)
	}
}

// translate maps store sentinels onto domain codes.
func translate(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "student not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "student ID is already registered")
	default:
		return dErrors.Wrap(err, dErrors.CodeStorageUnavailable, msg)
	}
}
