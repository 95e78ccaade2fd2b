package timeout

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "ballotbox/pkg/domain"
	dErrors "ballotbox/pkg/domain-errors"
	"ballotbox/pkg/platform/clock"
)

type expiry struct {
	sessionID id.SessionID
	token     Token
}

type RegistrySuite struct {
	suite.Suite
	clock    *clock.Manual
	registry *Registry

	mu       sync.Mutex
	expired  []expiry
	warnings []id.SessionID
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.clock = clock.NewManual(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	s.expired = nil
	s.warnings = nil
	var err error
	s.registry, err = NewRegistry(
		func(sessionID id.SessionID, token Token) {
			if !s.registry.Release(sessionID, token) {
				return
			}
			s.mu.Lock()
			defer s.mu.Unlock()
			s.expired = append(s.expired, expiry{sessionID, token})
		},
		WithClock(s.clock),
		WithWarningHook(func(sessionID id.SessionID, _ time.Duration) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.warnings = append(s.warnings, sessionID)
		}),
	)
	s.Require().NoError(err)
}

func (s *RegistrySuite) expiries() []expiry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]expiry(nil), s.expired...)
}

func (s *RegistrySuite) warned() []id.SessionID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]id.SessionID(nil), s.warnings...)
}

func (s *RegistrySuite) awaitExpiries(n int) []expiry {
	s.Require().Eventually(func() bool { return len(s.expiries()) == n }, time.Second, time.Millisecond)
	return s.expiries()
}

func (s *RegistrySuite) TestDefaults() {
	s.Equal(300*time.Second, s.registry.Duration())
}

func (s *RegistrySuite) TestRejectsInvalidTimeouts() {
	_, err := NewRegistry(nil, WithTimeouts(time.Minute, 2*time.Minute))
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *RegistrySuite) TestArmWarnsThenExpires() {
	sessionID := id.NewSessionID()
	token := s.registry.Arm(sessionID)

	s.clock.Advance(180 * time.Second)
	s.Equal([]id.SessionID{sessionID}, s.warned())
	status := s.registry.Status(sessionID)
	s.True(status.Active)
	s.True(status.Warned)
	s.Equal(120*time.Second, status.Remaining)

	s.clock.Advance(120 * time.Second)
	s.Equal([]expiry{{sessionID, token}}, s.awaitExpiries(1))
	s.False(s.registry.Status(sessionID).Active)
	s.Zero(s.registry.Len())
}

func (s *RegistrySuite) TestExtendPostponesExpiry() {
	sessionID := id.NewSessionID()
	s.registry.Arm(sessionID)

	s.clock.Advance(250 * time.Second)
	s.Require().NoError(s.registry.Extend(sessionID))
	s.False(s.registry.Status(sessionID).Warned)

	s.clock.Advance(50 * time.Second)
	s.Empty(s.expiries())
	s.True(s.registry.Status(sessionID).Active)

	s.clock.Advance(250 * time.Second)
	s.awaitExpiries(1)
}

func (s *RegistrySuite) TestExtendUnknownSession() {
	err := s.registry.Extend(id.NewSessionID())
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
}

func (s *RegistrySuite) TestDisarm() {
	sessionID := id.NewSessionID()
	s.registry.Arm(sessionID)
	s.registry.Disarm(sessionID)
	s.registry.Disarm(sessionID)

	s.clock.Advance(time.Hour)
	s.Empty(s.expiries())
	s.Empty(s.warned())
	s.Zero(s.registry.Len())
	s.Zero(s.clock.Pending())
}

func (s *RegistrySuite) TestRearmReplacesCountdown() {
	sessionID := id.NewSessionID()
	first := s.registry.Arm(sessionID)
	s.clock.Advance(200 * time.Second)
	second := s.registry.Arm(sessionID)
	s.NotEqual(first, second)

	s.clock.Advance(100 * time.Second)
	s.Empty(s.expiries(), "first arming was replaced")
	s.clock.Advance(200 * time.Second)
	s.Equal([]expiry{{sessionID, second}}, s.awaitExpiries(1))
}

func (s *RegistrySuite) TestReleaseRejectsStaleToken() {
	sessionID := id.NewSessionID()
	stale := s.registry.Arm(sessionID)
	current := s.registry.Arm(sessionID)

	s.False(s.registry.Release(sessionID, stale))
	s.Equal(1, s.registry.Len())
	s.True(s.registry.Release(sessionID, current))
	s.Zero(s.registry.Len())
}

func (s *RegistrySuite) TestSessionsAreIndependent() {
	a, b := id.NewSessionID(), id.NewSessionID()
	s.registry.Arm(a)
	s.clock.Advance(100 * time.Second)
	s.registry.Arm(b)

	s.clock.Advance(200 * time.Second)
	expired := s.awaitExpiries(1)
	s.Equal(a, expired[0].sessionID)
	s.True(s.registry.Status(b).Active)
}

func (s *RegistrySuite) TestNilExpireFuncReleasesItself() {
	registry, err := NewRegistry(nil, WithClock(s.clock))
	s.Require().NoError(err)
	registry.Arm(id.NewSessionID())

	s.clock.Advance(300 * time.Second)
	s.Eventually(func() bool { return registry.Len() == 0 }, time.Second, time.Millisecond)
}

func (s *RegistrySuite) TestDisarmAllStopsEveryCountdown() {
	s.registry.Arm(id.NewSessionID())
	s.registry.Arm(id.NewSessionID())

	s.Equal(2, s.registry.DisarmAll())
	s.Zero(s.registry.Len())
	s.Zero(s.clock.Pending())

	s.clock.Advance(10 * time.Minute)
	s.Empty(s.expiries())
}
