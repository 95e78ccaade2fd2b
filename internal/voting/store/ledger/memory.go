// Package ledger stores the durable per-election participation record that
// enforces at-most-once voting. Entries survive logout and session expiry.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"ballotbox/internal/voting/models"
	id "ballotbox/pkg/domain"
	"ballotbox/pkg/platform/sentinel"
)

type entryKey struct {
	election id.ElectionID
	voter    id.VoterID
}

// InMemoryLedger is the default ledger for single-process deployments.
type InMemoryLedger struct {
	mu      sync.RWMutex
	entries map[entryKey]models.LedgerEntry
}

func NewInMemory() *InMemoryLedger {
	return &InMemoryLedger{entries: make(map[entryKey]models.LedgerEntry)}
}

// Record inserts the entry unless the voter already has one for the election.
func (l *InMemoryLedger) Record(_ context.Context, entry models.LedgerEntry) error {
	key := entryKey{election: entry.ElectionID, voter: entry.VoterID}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.entries[key]; exists {
		return fmt.Errorf("%w: voter %s already recorded", sentinel.ErrConflict, entry.VoterID)
	}
	l.entries[key] = entry
	return nil
}

func (l *InMemoryLedger) Has(_ context.Context, electionID id.ElectionID, voterID id.VoterID) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.entries[entryKey{election: electionID, voter: voterID}]
	return ok, nil
}

func (l *InMemoryLedger) Get(_ context.Context, electionID id.ElectionID, voterID id.VoterID) (*models.LedgerEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entry, ok := l.entries[entryKey{election: electionID, voter: voterID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &entry, nil
}

func (l *InMemoryLedger) Count(_ context.Context, electionID id.ElectionID) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for key := range l.entries {
		if key.election == electionID {
			n++
		}
	}
	return n, nil
}

// VoterIDs lists every voter recorded for the election in ascending order.
func (l *InMemoryLedger) VoterIDs(_ context.Context, electionID id.ElectionID) ([]id.VoterID, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var voters []id.VoterID
	for key := range l.entries {
		if key.election == electionID {
			voters = append(voters, key.voter)
		}
	}
	sort.Slice(voters, func(i, j int) bool { return voters[i] < voters[j] })
	return voters, nil
}
