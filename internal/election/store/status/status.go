// Package status stores whether an election is accepting ballots, so every
// server instance sees the same open/closed switch.
package status

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"ballotbox/internal/election/models"
	id "ballotbox/pkg/domain"
	"ballotbox/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu       sync.RWMutex
	statuses map[id.ElectionID]models.Status
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{statuses: make(map[id.ElectionID]models.Status)}
}

// Get returns sentinel.ErrNotFound when the status was never set.
func (s *InMemoryStore) Get(_ context.Context, electionID id.ElectionID) (models.Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.statuses[electionID]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return st, nil
}

func (s *InMemoryStore) Set(_ context.Context, electionID id.ElectionID, st models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[electionID] = st
	return nil
}

type RedisStore struct {
	client redis.UniversalClient
}

func NewRedis(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func statusKey(electionID id.ElectionID) string {
	return fmt.Sprintf("ballot:election:{%s}:status", electionID)
}

func (s *RedisStore) Get(ctx context.Context, electionID id.ElectionID) (models.Status, error) {
	v, err := s.client.Get(ctx, statusKey(electionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: read election status: %v", sentinel.ErrUnavailable, err)
	}
	st, err := models.ParseStatus(v)
	if err != nil {
		return "", fmt.Errorf("%w: stored election status %q", sentinel.ErrInvalidState, v)
	}
	return st, nil
}

func (s *RedisStore) Set(ctx context.Context, electionID id.ElectionID, st models.Status) error {
	if err := s.client.Set(ctx, statusKey(electionID), string(st), 0).Err(); err != nil {
		return fmt.Errorf("%w: write election status: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

// SetIfAbsent seeds the initial status without overwriting a status another
// instance already set.
func (s *RedisStore) SetIfAbsent(ctx context.Context, electionID id.ElectionID, st models.Status) error {
	if err := s.client.SetNX(ctx, statusKey(electionID), string(st), 0).Err(); err != nil {
		return fmt.Errorf("%w: seed election status: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *InMemoryStore) SetIfAbsent(_ context.Context, electionID id.ElectionID, st models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.statuses[electionID]; !ok {
		s.statuses[electionID] = st
	}
	return nil
}
