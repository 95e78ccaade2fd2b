// Package tally stores per-candidate vote counts. Counts carry no voter
// identity; who voted lives only in the ballot ledger.
package tally

import (
	"context"
	"sync"

	id "ballotbox/pkg/domain"
)

type InMemoryTally struct {
	mu     sync.RWMutex
	counts map[id.ElectionID]map[id.CandidateID]int
}

func NewInMemory() *InMemoryTally {
	return &InMemoryTally{counts: make(map[id.ElectionID]map[id.CandidateID]int)}
}

func (t *InMemoryTally) Increment(_ context.Context, electionID id.ElectionID, candidateID id.CandidateID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	perElection, ok := t.counts[electionID]
	if !ok {
		perElection = make(map[id.CandidateID]int)
		t.counts[electionID] = perElection
	}
	perElection[candidateID]++
	return nil
}

// Counts returns a copy of the counts; candidates without votes are absent.
func (t *InMemoryTally) Counts(_ context.Context, electionID id.ElectionID) (map[id.CandidateID]int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[id.CandidateID]int, len(t.counts[electionID]))
	for c, n := range t.counts[electionID] {
		out[c] = n
	}
	return out, nil
}
