// Package circuit provides a consecutive-failure circuit breaker used to
// route storage calls to an in-memory fallback while a backend is failing.
package circuit

import (
	"sync"
	"time"

	"ballotbox/pkg/platform/clock"
)

// State is the breaker position.
type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// StateChange reports a transition caused by the recorded outcome.
type StateChange struct {
	Opened bool
	Closed bool
}

// DefaultRetryInterval spaces primary trial calls while the breaker is open.
const DefaultRetryInterval = 5 * time.Second

// Breaker opens after N consecutive failures and closes after M consecutive
// successes while open. While open, Allow admits one trial call per retry
// interval; after a successful trial call the rest pass immediately until
// the breaker closes or a trial call fails.
type Breaker struct {
	name             string
	clock            clock.Clock
	retryInterval    time.Duration
	nextTrial        time.Time
	mu               sync.Mutex
	state            State
	failureCount     int
	successCount     int
	failureThreshold int
	successThreshold int
}

type Option func(*Breaker)

func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failureThreshold = n
		}
	}
}

func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.successThreshold = n
		}
	}
}

func WithRetryInterval(d time.Duration) Option {
	return func(b *Breaker) {
		if d > 0 {
			b.retryInterval = d
		}
	}
}

func WithClock(c clock.Clock) Option {
	return func(b *Breaker) {
		b.clock = c
	}
}

func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:             name,
		clock:            clock.Real(),
		retryInterval:    DefaultRetryInterval,
		failureThreshold: 5,
		successThreshold: 3,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Breaker) Name() string { return b.name }

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) IsOpen() bool {
	return b.State() == StateOpen
}

// Allow reports whether the caller may try the primary. It is always true
// while closed.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateClosed {
		return true
	}
	now := b.clock.Now()
	if now.Before(b.nextTrial) {
		return false
	}
	b.nextTrial = now.Add(b.retryInterval)
	return true
}

// RecordFailure counts a primary failure. useFallback is true while the
// breaker is open.
func (b *Breaker) RecordFailure() (useFallback bool, change StateChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount++
	b.successCount = 0
	if b.state == StateOpen {
		b.nextTrial = b.clock.Now().Add(b.retryInterval)
		return true, StateChange{}
	}
	if b.failureCount >= b.failureThreshold {
		b.state = StateOpen
		b.nextTrial = b.clock.Now().Add(b.retryInterval)
		return true, StateChange{Opened: true}
	}
	return false, StateChange{}
}

// RecordSuccess counts a primary success. usePrimary is true once the breaker
// is closed.
func (b *Breaker) RecordSuccess() (usePrimary bool, change StateChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		b.successCount++
		if b.successCount >= b.successThreshold {
			b.state = StateClosed
			b.failureCount = 0
			b.successCount = 0
			return true, StateChange{Closed: true}
		}
		b.nextTrial = time.Time{}
		return false, StateChange{}
	}
	b.failureCount = 0
	return true, StateChange{}
}

func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failureCount = 0
	b.successCount = 0
	b.nextTrial = time.Time{}
}
