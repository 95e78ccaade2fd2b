package memory

import (
	"context"
	"sort"
	"sync"

	audit "ballotbox/pkg/platform/audit"
)

// InMemoryStore keeps the audit trail in insertion order and assigns Seq.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
	seq    int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
	s.seq = 0
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	event.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	event.Seq = s.seq
	s.events = append(s.events, event)
	return nil
}

// List returns matching events newest first.
func (s *InMemoryStore) List(_ context.Context, filter audit.Filter) ([]audit.Event, error) {
	s.mu.RLock()
	matched := make([]audit.Event, 0, len(s.events))
	for _, e := range s.events {
		if filter.Matches(e) {
			matched = append(matched, e)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return audit.Less(matched[i], matched[j])
	})
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (s *InMemoryStore) Counts(_ context.Context) (map[audit.Category]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[audit.Category]int, len(audit.Categories))
	for _, c := range audit.Categories {
		counts[c] = 0
	}
	for _, e := range s.events {
		counts[e.Category]++
	}
	return counts, nil
}
