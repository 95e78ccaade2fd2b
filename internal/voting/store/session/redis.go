package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"ballotbox/internal/voting/models"
	id "ballotbox/pkg/domain"
	"ballotbox/pkg/platform/sentinel"
)

const sessionKeyPrefix = "ballot:session:"

// RedisStore keeps each snapshot as one JSON value, so a save is a single SET
// and can never be observed half-written.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedis(client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *RedisStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

func sessionKey(sessionID id.SessionID) string {
	return sessionKeyPrefix + sessionID.String()
}

// Load returns the stored snapshot. Missing, corrupt or inconsistent values
// read as an unauthenticated session.
func (s *RedisStore) Load(ctx context.Context, sessionID id.SessionID) (models.Snapshot, error) {
	raw, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Unauthenticated(), nil
	}
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: get session: %v", sentinel.ErrUnavailable, err)
	}

	var rec models.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.logger.WarnContext(ctx, "discarding undecodable session record",
			"session_id", sessionID.String(),
			"error", err,
		)
		return models.Unauthenticated(), nil
	}
	snap, err := rec.Snapshot()
	if err != nil {
		s.logger.WarnContext(ctx, "discarding inconsistent session record",
			"session_id", sessionID.String(),
			"error", err,
		)
		return models.Unauthenticated(), nil
	}
	return snap, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID id.SessionID, snap models.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(snap.ToRecord())
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set session: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID id.SessionID) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: delete session: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}
