//go:build integration

package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"ballotbox/internal/voting/models"
	id "ballotbox/pkg/domain"
	"ballotbox/pkg/testutil/containers"
)

type RedisSessionStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *RedisStore
	ctx   context.Context
}

func TestRedisSessionStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisSessionStoreSuite))
}

func (s *RedisSessionStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = NewRedis(s.redis.Client, time.Minute, nil)
	s.ctx = context.Background()
}

func (s *RedisSessionStoreSuite) TestRoundTrip() {
	sessionID := id.NewSessionID()
	snap := voted("STU003")
	s.Require().NoError(s.store.Save(s.ctx, sessionID, snap))

	got, err := s.store.Load(s.ctx, sessionID)
	s.Require().NoError(err)
	s.Equal(snap, got)

	ttl, err := s.redis.Client.TTL(s.ctx, sessionKey(sessionID)).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
}

func (s *RedisSessionStoreSuite) TestCorruptRecordReadsAsUnauthenticated() {
	sessionID := id.NewSessionID()
	s.Require().NoError(s.redis.Client.Set(s.ctx, sessionKey(sessionID),
		`{"session_state":"voted","voter_id":"STU001","vote_record":null}`, time.Minute).Err())

	got, err := s.store.Load(s.ctx, sessionID)
	s.Require().NoError(err)
	s.Equal(models.Unauthenticated(), got)
}

func (s *RedisSessionStoreSuite) TestClear() {
	sessionID := id.NewSessionID()
	s.Require().NoError(s.store.Save(s.ctx, sessionID, authenticated("STU001")))
	s.Require().NoError(s.store.Clear(s.ctx, sessionID))

	got, err := s.store.Load(s.ctx, sessionID)
	s.Require().NoError(err)
	s.Equal(models.StateUnauthenticated, got.State)
}
