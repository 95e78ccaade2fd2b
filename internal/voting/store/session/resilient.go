package session

import (
	"context"
	"log/slog"
	"sync"

	"ballotbox/internal/voting/models"
	id "ballotbox/pkg/domain"
	"ballotbox/pkg/platform/circuit"
)

// Backend is the contract shared by every session store.
type Backend interface {
	Load(ctx context.Context, sessionID id.SessionID) (models.Snapshot, error)
	Save(ctx context.Context, sessionID id.SessionID, snap models.Snapshot) error
	Clear(ctx context.Context, sessionID id.SessionID) error
}

// StateChangeFunc is notified when the primary store is declared down or back up.
type StateChangeFunc func(ctx context.Context, degraded bool)

// ResilientStore serves sessions from a primary backend and falls back to
// memory when the primary fails. While the breaker is open the primary is
// skipped except for periodic trial calls. A session that touched the
// fallback is pinned to it until it is cleared or saved to the primary again,
// so reads never mix state from both backends.
type ResilientStore struct {
	primary  Backend
	fallback *InMemoryStore
	breaker  *circuit.Breaker
	logger   *slog.Logger
	onChange StateChangeFunc

	mu     sync.Mutex
	pinned map[id.SessionID]struct{}
}

type ResilientOption func(*ResilientStore)

func WithBreaker(b *circuit.Breaker) ResilientOption {
	return func(s *ResilientStore) {
		s.breaker = b
	}
}

func WithLogger(logger *slog.Logger) ResilientOption {
	return func(s *ResilientStore) {
		s.logger = logger
	}
}

func WithStateChange(fn StateChangeFunc) ResilientOption {
	return func(s *ResilientStore) {
		s.onChange = fn
	}
}

func NewResilient(primary Backend, opts ...ResilientOption) *ResilientStore {
	s := &ResilientStore{
		primary:  primary,
		fallback: NewInMemory(),
		breaker:  circuit.New("session-store"),
		logger:   slog.Default(),
		pinned:   make(map[id.SessionID]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load never returns an error for primary unavailability.
func (s *ResilientStore) Load(ctx context.Context, sessionID id.SessionID) (models.Snapshot, error) {
	if s.isPinned(sessionID) {
		return s.fallback.Load(ctx, sessionID)
	}
	if !s.breaker.Allow() {
		s.pin(sessionID)
		return s.fallback.Load(ctx, sessionID)
	}
	snap, err := s.primary.Load(ctx, sessionID)
	if err == nil {
		s.recordSuccess(ctx)
		return snap, nil
	}
	s.recordFailure(ctx, "load", sessionID, err)
	s.pin(sessionID)
	return s.fallback.Load(ctx, sessionID)
}

// Save validates before touching either backend; invalid snapshots are the
// caller's error, not a storage failure.
func (s *ResilientStore) Save(ctx context.Context, sessionID id.SessionID, snap models.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	if !s.breaker.Allow() {
		s.pin(sessionID)
		return s.fallback.Save(ctx, sessionID, snap)
	}
	err := s.primary.Save(ctx, sessionID, snap)
	if err == nil {
		s.recordSuccess(ctx)
		if s.unpin(sessionID) {
			_ = s.fallback.Clear(ctx, sessionID)
		}
		return nil
	}
	s.recordFailure(ctx, "save", sessionID, err)
	s.pin(sessionID)
	return s.fallback.Save(ctx, sessionID, snap)
}

// Clear unpins only once the primary copy is gone. Otherwise the session stays
// pinned to the (now empty) fallback so a stale primary copy cannot come back.
func (s *ResilientStore) Clear(ctx context.Context, sessionID id.SessionID) error {
	if err := s.fallback.Clear(ctx, sessionID); err != nil {
		return err
	}
	if !s.breaker.Allow() {
		s.pin(sessionID)
		return nil
	}
	if err := s.primary.Clear(ctx, sessionID); err != nil {
		s.recordFailure(ctx, "clear", sessionID, err)
		s.pin(sessionID)
		return nil
	}
	s.recordSuccess(ctx)
	s.unpin(sessionID)
	return nil
}

// Degraded reports whether sessionID is currently served from memory.
func (s *ResilientStore) Degraded(sessionID id.SessionID) bool {
	return s.isPinned(sessionID) || s.breaker.IsOpen()
}

func (s *ResilientStore) isPinned(sessionID id.SessionID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pinned[sessionID]
	return ok
}

func (s *ResilientStore) pin(sessionID id.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pinned[sessionID] = struct{}{}
}

func (s *ResilientStore) unpin(sessionID id.SessionID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pinned[sessionID]
	delete(s.pinned, sessionID)
	return ok
}

func (s *ResilientStore) recordFailure(ctx context.Context, op string, sessionID id.SessionID, err error) {
	s.logger.WarnContext(ctx, "session storage unavailable, using in-memory state",
		"operation", op,
		"session_id", sessionID.String(),
		"error", err,
	)
	if _, change := s.breaker.RecordFailure(); change.Opened {
		s.logger.ErrorContext(ctx, "session store circuit opened", "breaker", s.breaker.Name())
		if s.onChange != nil {
			s.onChange(ctx, true)
		}
	}
}

func (s *ResilientStore) recordSuccess(ctx context.Context) {
	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "session store circuit closed", "breaker", s.breaker.Name())
		if s.onChange != nil {
			s.onChange(ctx, false)
		}
	}
}
