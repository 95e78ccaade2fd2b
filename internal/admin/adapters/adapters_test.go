package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	electionModels "ballotbox/internal/election/models"
	rosterModels "ballotbox/internal/roster/models"
	id "ballotbox/pkg/domain"
)

type stubRoster struct {
	counts *rosterModels.RosterCounts
	err    error
}

func (s stubRoster) Counts(context.Context) (*rosterModels.RosterCounts, error) {
	return s.counts, s.err
}

type stubElection struct{}

func (stubElection) ElectionID() id.ElectionID { return "student-council-2026" }
func (stubElection) Status(context.Context) electionModels.Status {
	return electionModels.StatusClosed
}

func TestRosterAdapter(t *testing.T) {
	a := NewRosterAdapter(stubRoster{counts: &rosterModels.RosterCounts{Total: 10, Active: 8, Voted: 5, VotedActive: 4, Pending: 3, Inactive: 2}})
	summary, err := a.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, summary.Total)
	assert.Equal(t, 8, summary.Active)
	assert.Equal(t, 5, summary.Voted)
	assert.Equal(t, 4, summary.VotedActive)
	assert.Equal(t, 3, summary.Pending)

	_, err = NewRosterAdapter(stubRoster{err: errors.New("down")}).Summary(context.Background())
	assert.Error(t, err)
}

func TestElectionAdapter(t *testing.T) {
	eid, status := NewElectionAdapter(stubElection{}).Status(context.Background())
	assert.Equal(t, "student-council-2026", eid)
	assert.Equal(t, "closed", status)
}
