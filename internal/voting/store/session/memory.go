package session

import (
	"context"
	"sync"

	"ballotbox/internal/voting/models"
	id "ballotbox/pkg/domain"
)

// InMemoryStore keeps snapshots in process memory. It is the default store
// and the fallback behind ResilientStore.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[id.SessionID]models.Snapshot
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[id.SessionID]models.Snapshot)}
}

func (s *InMemoryStore) Load(_ context.Context, sessionID id.SessionID) (models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.sessions[sessionID]
	if !ok {
		return models.Unauthenticated(), nil
	}
	return snap.Clone(), nil
}

// Save replaces the whole snapshot after validating it.
func (s *InMemoryStore) Save(_ context.Context, sessionID id.SessionID, snap models.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = snap.Clone()
	return nil
}

func (s *InMemoryStore) Clear(_ context.Context, sessionID id.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Len reports how many sessions hold state.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
