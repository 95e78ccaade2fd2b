// Package adapters maps roster and election services onto the admin types.
package adapters

import (
	"context"

	"ballotbox/internal/admin/types"
	rosterModels "ballotbox/internal/roster/models"
)

// RosterCounter is implemented by the roster service.
type RosterCounter interface {
	Counts(ctx context.Context) (*rosterModels.RosterCounts, error)
}

type RosterAdapter struct {
	roster RosterCounter
}

func NewRosterAdapter(roster RosterCounter) *RosterAdapter {
	return &RosterAdapter{roster: roster}
}

func (a *RosterAdapter) Summary(ctx context.Context) (*types.RosterSummary, error) {
	c, err := a.roster.Counts(ctx)
	if err != nil {
		return nil, err
	}
	return &types.RosterSummary{
		Total:       c.Total,
		Active:      c.Active,
		Voted:       c.Voted,
		VotedActive: c.VotedActive,
		Pending:     c.Pending,
	}, nil
}
