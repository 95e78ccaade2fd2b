package adapters

import (
	"context"

	electionModels "ballotbox/internal/election/models"
	id "ballotbox/pkg/domain"
)

// ElectionStatusReader is implemented by the election service.
type ElectionStatusReader interface {
	ElectionID() id.ElectionID
	Status(ctx context.Context) electionModels.Status
}

type ElectionAdapter struct {
	election ElectionStatusReader
}

func NewElectionAdapter(election ElectionStatusReader) *ElectionAdapter {
	return &ElectionAdapter{election: election}
}

// Status returns the election ID and its live status.
func (a *ElectionAdapter) Status(ctx context.Context) (string, string) {
	return a.election.ElectionID().String(), string(a.election.Status(ctx))
}
