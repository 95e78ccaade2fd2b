package tally

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/stretchr/testify/suite"

	id "ballotbox/pkg/domain"
)

type tallyStore interface {
	Increment(ctx context.Context, electionID id.ElectionID, candidateID id.CandidateID) error
	Counts(ctx context.Context, electionID id.ElectionID) (map[id.CandidateID]int, error)
}

// TallyContractSuite runs the same checks against every backend. Each test
// uses a fresh election ID.
type TallyContractSuite struct {
	suite.Suite
	newTally func() tallyStore
	tally    tallyStore
	election id.ElectionID
	ctx      context.Context
}

var electionSeq atomic.Int64

func (s *TallyContractSuite) SetupTest() {
	s.tally = s.newTally()
	s.election = id.ElectionID(fmt.Sprintf("tally-election-%d", electionSeq.Add(1)))
	s.ctx = context.Background()
}

func (s *TallyContractSuite) TestEmptyElectionHasNoCounts() {
	counts, err := s.tally.Counts(s.ctx, s.election)
	s.Require().NoError(err)
	s.Empty(counts)
}

func (s *TallyContractSuite) TestIncrementAccumulates() {
	s.Require().NoError(s.tally.Increment(s.ctx, s.election, "candidate-1"))
	s.Require().NoError(s.tally.Increment(s.ctx, s.election, "candidate-1"))
	s.Require().NoError(s.tally.Increment(s.ctx, s.election, "candidate-3"))

	counts, err := s.tally.Counts(s.ctx, s.election)
	s.Require().NoError(err)
	s.Equal(map[id.CandidateID]int{"candidate-1": 2, "candidate-3": 1}, counts)
}

func (s *TallyContractSuite) TestElectionsAreIsolated() {
	other := id.ElectionID(string(s.election) + "-other")
	s.Require().NoError(s.tally.Increment(s.ctx, other, "candidate-2"))

	counts, err := s.tally.Counts(s.ctx, s.election)
	s.Require().NoError(err)
	s.Empty(counts)
}

func (s *TallyContractSuite) TestConcurrentIncrementsAreNotLost() {
	const workers = 20
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.NoError(s.tally.Increment(s.ctx, s.election, "candidate-4"))
		}()
	}
	wg.Wait()

	counts, err := s.tally.Counts(s.ctx, s.election)
	s.Require().NoError(err)
	s.Equal(workers, counts["candidate-4"])
}
