package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/suite"

	"ballotbox/internal/voting/models"
	id "ballotbox/pkg/domain"
	"ballotbox/pkg/platform/sentinel"
)

type ledgerStore interface {
	Record(ctx context.Context, entry models.LedgerEntry) error
	Has(ctx context.Context, electionID id.ElectionID, voterID id.VoterID) (bool, error)
	Get(ctx context.Context, electionID id.ElectionID, voterID id.VoterID) (*models.LedgerEntry, error)
	Count(ctx context.Context, electionID id.ElectionID) (int, error)
	VoterIDs(ctx context.Context, electionID id.ElectionID) ([]id.VoterID, error)
}

// LedgerContractSuite runs the same behaviour checks against every backend.
// newLedger must return an empty ledger; each test uses a fresh election id.
type LedgerContractSuite struct {
	suite.Suite
	newLedger func() ledgerStore
	ledger    ledgerStore
	election  id.ElectionID
	ctx       context.Context
}

var electionSeq atomic.Int64

func (s *LedgerContractSuite) SetupTest() {
	s.ledger = s.newLedger()
	s.election = id.ElectionID(fmt.Sprintf("election-%d", electionSeq.Add(1)))
	s.ctx = context.Background()
}

func (s *LedgerContractSuite) entry(voter id.VoterID, code string) models.LedgerEntry {
	return models.LedgerEntry{
		ElectionID:       s.election,
		VoterID:          voter,
		ConfirmationCode: id.ConfirmationCode(code),
		CastAt:           time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
	}
}

func (s *LedgerContractSuite) TestRecordOnce() {
	s.Require().NoError(s.ledger.Record(s.ctx, s.entry("STU001", "VT-2026-AAAAAAAAAA")))

	err := s.ledger.Record(s.ctx, s.entry("STU001", "VT-2026-BBBBBBBBBB"))
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrConflict))

	got, err := s.ledger.Get(s.ctx, s.election, "STU001")
	s.Require().NoError(err)
	s.Equal(id.ConfirmationCode("VT-2026-AAAAAAAAAA"), got.ConfirmationCode, "first entry wins")
	s.True(got.CastAt.Equal(time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)))
}

func (s *LedgerContractSuite) TestHas() {
	has, err := s.ledger.Has(s.ctx, s.election, "STU002")
	s.Require().NoError(err)
	s.False(has)

	s.Require().NoError(s.ledger.Record(s.ctx, s.entry("STU002", "VT-2026-CCCCCCCCCC")))
	has, err = s.ledger.Has(s.ctx, s.election, "STU002")
	s.Require().NoError(err)
	s.True(has)

	has, err = s.ledger.Has(s.ctx, "other-election", "STU002")
	s.Require().NoError(err)
	s.False(has, "entries are scoped to an election")
}

func (s *LedgerContractSuite) TestGetMissing() {
	_, err := s.ledger.Get(s.ctx, s.election, "STU404")
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *LedgerContractSuite) TestCountAndVoters() {
	s.Require().NoError(s.ledger.Record(s.ctx, s.entry("STU003", "VT-2026-DDDDDDDDDD")))
	s.Require().NoError(s.ledger.Record(s.ctx, s.entry("STU001", "VT-2026-EEEEEEEEEE")))

	n, err := s.ledger.Count(s.ctx, s.election)
	s.Require().NoError(err)
	s.Equal(2, n)

	voters, err := s.ledger.VoterIDs(s.ctx, s.election)
	s.Require().NoError(err)
	s.Equal([]id.VoterID{"STU001", "STU003"}, voters)
}

func (s *LedgerContractSuite) TestConcurrentRecordAdmitsOne() {
	const attempts = 16
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		conflicts atomic.Int32
	)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.ledger.Record(s.ctx, s.entry("STU009", fmt.Sprintf("VT-2026-%010d", i)))
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, sentinel.ErrConflict):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), succeeded.Load())
	s.Equal(int32(attempts-1), conflicts.Load())
	n, err := s.ledger.Count(s.ctx, s.election)
	s.Require().NoError(err)
	s.Equal(1, n)
}
