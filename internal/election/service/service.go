// Package service runs the election: the open/closed switch, candidate
// lookups for the voting state machine, and result computation.
package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sort"
	"sync/atomic"

	"ballotbox/internal/election/models"
	id "ballotbox/pkg/domain"
	dErrors "ballotbox/pkg/domain-errors"
	audit "ballotbox/pkg/platform/audit"
	"ballotbox/pkg/platform/sentinel"
)

// Tally reads per-candidate counts.
type Tally interface {
	Counts(ctx context.Context, electionID id.ElectionID) (map[id.CandidateID]int, error)
}

// StatusStore holds the live open/closed switch.
type StatusStore interface {
	Get(ctx context.Context, electionID id.ElectionID) (models.Status, error)
	Set(ctx context.Context, electionID id.ElectionID, status models.Status) error
	SetIfAbsent(ctx context.Context, electionID id.ElectionID, status models.Status) error
}

// EligibleVoters reports participation among students currently allowed to vote.
type EligibleVoters interface {
	Turnout(ctx context.Context) (voted, eligible int, err error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	election models.Election
	tally    Tally
	status   StatusStore
	eligible EligibleVoters
	auditor  AuditPublisher
	logger   *slog.Logger

	// open caches the last status read so a status store outage keeps the
	// previous answer instead of flipping the election.
	open atomic.Bool
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

func WithEligibleVoters(eligible EligibleVoters) Option {
	return func(s *Service) {
		s.eligible = eligible
	}
}

func New(election models.Election, tally Tally, status StatusStore, opts ...Option) (*Service, error) {
	if err := election.Validate(); err != nil {
		return nil, err
	}
	if tally == nil {
		return nil, errors.New("tally is required")
	}
	if status == nil {
		return nil, errors.New("status store is required")
	}
	s := &Service{
		election: election,
		tally:    tally,
		status:   status,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.open.Store(election.Status == models.StatusOpen)
	return s, nil
}

// Init seeds the configured initial status unless another instance already
// set one, then loads the live value.
func (s *Service) Init(ctx context.Context) error {
	if err := s.status.SetIfAbsent(ctx, s.election.ID, s.election.Status); err != nil {
		return err
	}
	s.Status(ctx)
	return nil
}

func (s *Service) ElectionID() id.ElectionID { return s.election.ID }

// Election returns the ballot definition with the live status.
func (s *Service) Election(ctx context.Context) models.Election {
	e := s.election
	e.Candidates = append([]models.Candidate(nil), s.election.Candidates...)
	e.Status = s.Status(ctx)
	return e
}

// Status reads the live status, falling back to the last known value when
// the store is unreachable.
func (s *Service) Status(ctx context.Context) models.Status {
	st, err := s.status.Get(ctx, s.election.ID)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "election status unavailable, using last known value",
				"election_id", s.election.ID.String(),
				"error", err,
			)
		}
		if s.open.Load() {
			return models.StatusOpen
		}
		return models.StatusClosed
	}
	s.open.Store(st == models.StatusOpen)
	return st
}

func (s *Service) IsOpen(ctx context.Context) bool {
	return s.Status(ctx) == models.StatusOpen
}

func (s *Service) CandidateName(_ context.Context, candidateID id.CandidateID) (string, bool) {
	c, ok := s.election.Candidate(candidateID)
	if !ok {
		return "", false
	}
	return c.Name, true
}

func (s *Service) Open(ctx context.Context) (models.Status, error) {
	return s.setStatus(ctx, models.StatusOpen)
}

func (s *Service) Close(ctx context.Context) (models.Status, error) {
	return s.setStatus(ctx, models.StatusClosed)
}

// setStatus is a no-op when the election is already in the target status.
func (s *Service) setStatus(ctx context.Context, target models.Status) (models.Status, error) {
	current := s.Status(ctx)
	if current == target {
		return current, nil
	}
	if err := s.status.Set(ctx, s.election.ID, target); err != nil {
		return current, dErrors.Wrap(err, dErrors.CodeStorageUnavailable, "failed to change election status")
	}
	s.open.Store(target == models.StatusOpen)

	s.logger.InfoContext(ctx, "election status changed",
		"election_id", s.election.ID.String(),
		"from", string(current),
		"to", string(target),
	)
	s.emit(ctx, audit.ActionElectionStateChanged, string(current)+" -> "+string(target))
	return target, nil
}

// Results ranks candidates by votes. Tied candidates share a rank and keep
// ballot order; the next rank skips accordingly (1, 1, 3).
func (s *Service) Results(ctx context.Context) (*models.Results, error) {
	counts, err := s.tally.Counts(ctx, s.election.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorageUnavailable, "failed to read tally")
	}

	rows := make([]models.CandidateResult, len(s.election.Candidates))
	total := 0
	for i, c := range s.election.Candidates {
		rows[i] = models.CandidateResult{Candidate: c, Votes: counts[c.ID]}
		total += counts[c.ID]
	}
	for cid := range counts {
		if _, ok := s.election.Candidate(cid); !ok {
			s.logger.WarnContext(ctx, "tally holds votes for unknown candidate",
				"election_id", s.election.ID.String(),
				"candidate_id", cid.String(),
			)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Votes > rows[j].Votes })
	for i := range rows {
		rows[i].Percent = percent(rows[i].Votes, total)
		if i > 0 && rows[i].Votes == rows[i-1].Votes {
			rows[i].Rank = rows[i-1].Rank
		} else {
			rows[i].Rank = i + 1
		}
	}

	res := &models.Results{
		ElectionID: s.election.ID,
		Title:      s.election.Title,
		Status:     s.Status(ctx),
		Candidates: rows,
		TotalVotes: total,
	}
	if len(rows) > 1 {
		res.Margin = rows[0].Votes - rows[1].Votes
	}
	if s.eligible != nil {
		voted, eligible, err := s.eligible.Turnout(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "eligible voter count unavailable",
				"election_id", s.election.ID.String(),
				"error", err,
			)
		} else {
			res.EligibleVoters = eligible
			res.TurnoutPercent = percent(voted, eligible)
		}
	}
	return res, nil
}

// percent is part/whole*100 rounded to one decimal; zero when whole is zero.
func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)*1000/float64(whole)) / 10
}

func (s *Service) emit(ctx context.Context, action audit.Action, detail string) {
	if s.auditor == nil {
		return
	}
	event := audit.NewEvent(ctx, action, s.election.ID.String(), detail)
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", string(action),
			"error", err,
		)
	}
}
