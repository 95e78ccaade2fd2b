package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"ballotbox/internal/election/models"
	"ballotbox/internal/election/store/status"
	"ballotbox/internal/election/store/tally"
	id "ballotbox/pkg/domain"
	dErrors "ballotbox/pkg/domain-errors"
	audit "ballotbox/pkg/platform/audit"
	"ballotbox/pkg/platform/sentinel"
	"ballotbox/pkg/requestcontext"
)

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAuditor) Emit(_ context.Context, e audit.Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
	return nil
}

func (a *recordingAuditor) actions() []audit.Action {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]audit.Action, len(a.events))
	for i, e := range a.events {
		out[i] = e.Action
	}
	return out
}

type fixedEligible struct {
	voted, n int
	err      error
}

func (f fixedEligible) Turnout(context.Context) (int, int, error) { return f.voted, f.n, f.err }

// flakyStatus wraps a status store and can be switched off.
type flakyStatus struct {
	*status.InMemoryStore
	down bool
}

func (f *flakyStatus) Get(ctx context.Context, eid id.ElectionID) (models.Status, error) {
	if f.down {
		return "", fmt.Errorf("%w: redis down", sentinel.ErrUnavailable)
	}
	return f.InMemoryStore.Get(ctx, eid)
}

func (f *flakyStatus) Set(ctx context.Context, eid id.ElectionID, st models.Status) error {
	if f.down {
		return fmt.Errorf("%w: redis down", sentinel.ErrUnavailable)
	}
	return f.InMemoryStore.Set(ctx, eid, st)
}

type failingTally struct{}

func (failingTally) Counts(context.Context, id.ElectionID) (map[id.CandidateID]int, error) {
	return nil, fmt.Errorf("%w: redis down", sentinel.ErrUnavailable)
}

type ElectionServiceSuite struct {
	suite.Suite
	ctx     context.Context
	tally   *tally.InMemoryTally
	status  *flakyStatus
	auditor *recordingAuditor
	service *Service
}

func TestElectionServiceSuite(t *testing.T) {
	suite.Run(t, new(ElectionServiceSuite))
}

func (s *ElectionServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithAdminActor(context.Background(), "registrar")
	s.tally = tally.NewInMemory()
	s.status = &flakyStatus{InMemoryStore: status.NewInMemory()}
	s.auditor = &recordingAuditor{}
	svc, err := New(models.Default(), s.tally, s.status,
		WithAuditPublisher(s.auditor),
		WithEligibleVoters(fixedEligible{voted: 7, n: 10}),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.Require().NoError(err)
	s.Require().NoError(svc.Init(s.ctx))
	s.service = svc
}

func (s *ElectionServiceSuite) vote(candidate id.CandidateID, n int) {
	for range n {
		s.Require().NoError(s.tally.Increment(s.ctx, s.service.ElectionID(), candidate))
	}
}

func (s *ElectionServiceSuite) TestNewRejectsInvalidElection() {
	_, err := New(models.Election{ID: "e1", Title: "T", Status: models.StatusOpen}, s.tally, s.status)
	s.Error(err)
}

func (s *ElectionServiceSuite) TestOpenCloseIsAudited() {
	s.True(s.service.IsOpen(s.ctx))

	st, err := s.service.Close(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.StatusClosed, st)
	s.False(s.service.IsOpen(s.ctx))

	st, err = s.service.Close(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.StatusClosed, st)

	_, err = s.service.Open(s.ctx)
	s.Require().NoError(err)
	s.True(s.service.IsOpen(s.ctx))

	s.Equal([]audit.Action{audit.ActionElectionStateChanged, audit.ActionElectionStateChanged}, s.auditor.actions())
	s.Equal("open -> closed", s.auditor.events[0].Detail)
	s.Equal("registrar", s.auditor.events[0].ActorID)
	s.Equal(audit.CategoryAdmin, s.auditor.events[0].Category)
}

func (s *ElectionServiceSuite) TestInitKeepsExistingStatus() {
	_, err := s.service.Close(s.ctx)
	s.Require().NoError(err)

	other, err := New(models.Default(), s.tally, s.status)
	s.Require().NoError(err)
	s.Require().NoError(other.Init(s.ctx))
	s.False(other.IsOpen(s.ctx))
}

func (s *ElectionServiceSuite) TestStatusOutageKeepsLastKnownValue() {
	_, err := s.service.Close(s.ctx)
	s.Require().NoError(err)
	s.status.down = true

	s.False(s.service.IsOpen(s.ctx))

	_, err = s.service.Open(s.ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeStorageUnavailable))
	s.False(s.service.IsOpen(s.ctx))
}

func (s *ElectionServiceSuite) TestCandidateName() {
	name, ok := s.service.CandidateName(s.ctx, "candidate-2")
	s.True(ok)
	s.Equal("Maria Rodriguez", name)

	_, ok = s.service.CandidateName(s.ctx, "candidate-9")
	s.False(ok)
}

func (s *ElectionServiceSuite) TestResultsRankingAndPercentages() {
	s.vote("candidate-2", 3)
	s.vote("candidate-4", 2)
	s.vote("candidate-1", 2)

	res, err := s.service.Results(s.ctx)
	s.Require().NoError(err)

	s.Equal(7, res.TotalVotes)
	s.Equal(10, res.EligibleVoters)
	s.Equal(70.0, res.TurnoutPercent)
	s.Equal(1, res.Margin)

	s.Require().Len(res.Candidates, 4)
	got := make([]string, len(res.Candidates))
	for i, row := range res.Candidates {
		got[i] = fmt.Sprintf("%d %s %d %.1f", row.Rank, row.Candidate.ID, row.Votes, row.Percent)
	}
	s.Equal([]string{
		"1 candidate-2 3 42.9",
		"2 candidate-1 2 28.6",
		"2 candidate-4 2 28.6",
		"4 candidate-3 0 0.0",
	}, got)
}

func (s *ElectionServiceSuite) TestTurnoutCountsEligibleVotersOnly() {
	svc, err := New(models.Default(), s.tally, s.status, WithEligibleVoters(fixedEligible{voted: 4, n: 5}))
	s.Require().NoError(err)
	s.vote("candidate-1", 7)

	res, err := svc.Results(s.ctx)
	s.Require().NoError(err)
	s.Equal(7, res.TotalVotes, "ballots from since-removed students stay in the tally")
	s.Equal(5, res.EligibleVoters)
	s.Equal(80.0, res.TurnoutPercent)
}

func (s *ElectionServiceSuite) TestResultsWithoutVotes() {
	res, err := s.service.Results(s.ctx)
	s.Require().NoError(err)
	s.Zero(res.TotalVotes)
	s.Zero(res.TurnoutPercent)
	s.Zero(res.Margin)
	for _, row := range res.Candidates {
		s.Equal(1, row.Rank)
		s.Zero(row.Percent)
	}
}

func (s *ElectionServiceSuite) TestResultsTolerateRosterOutage() {
	svc, err := New(models.Default(), s.tally, s.status, WithEligibleVoters(fixedEligible{err: errors.New("roster down")}))
	s.Require().NoError(err)
	s.vote("candidate-3", 1)

	res, err := svc.Results(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, res.TotalVotes)
	s.Zero(res.EligibleVoters)
}

func (s *ElectionServiceSuite) TestResultsTallyOutage() {
	svc, err := New(models.Default(), failingTally{}, s.status)
	s.Require().NoError(err)

	_, err = svc.Results(s.ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeStorageUnavailable))
}

func (s *ElectionServiceSuite) TestExportCSV() {
	s.vote("candidate-1", 1)
	s.vote("candidate-3", 2)

	var buf bytes.Buffer
	s.Require().NoError(s.service.ExportCSV(s.ctx, &buf))

	s.Equal("Rank,Candidate,Votes,Percentage\n"+
		"1,James Thompson,2,66.7\n"+
		"2,Alex Chen,1,33.3\n"+
		"3,Maria Rodriguez,0,0.0\n"+
		"3,Emily Davis,0,0.0\n", buf.String())
	s.Equal([]audit.Action{audit.ActionExportPerformed}, s.auditor.actions())
}

func (s *ElectionServiceSuite) TestElectionReflectsLiveStatus() {
	_, err := s.service.Close(s.ctx)
	s.Require().NoError(err)

	e := s.service.Election(s.ctx)
	s.Equal(models.StatusClosed, e.Status)
	s.Len(e.Candidates, 4)
}

func TestPercent(t *testing.T) {
	cases := []struct {
		part, whole int
		want        float64
	}{
		{0, 0, 0},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{1247, 1588, 78.5},
		{5, 5, 100},
	}
	for _, c := range cases {
		if got := percent(c.part, c.whole); got != c.want {
			t.Errorf("percent(%d, %d) = %v, want %v", c.part, c.whole, got, c.want)
		}
	}
}
