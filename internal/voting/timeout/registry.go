package timeout

import (
	"log/slog"
	"sync"
	"time"

	id "ballotbox/pkg/domain"
	dErrors "ballotbox/pkg/domain-errors"
	"ballotbox/pkg/platform/clock"
)

const (
	DefaultDuration      = 300 * time.Second
	DefaultWarningBefore = 120 * time.Second
)

// Token identifies one arming of a session's countdown.
type Token uint64

// ExpireFunc is invoked on its own goroutine when a session's countdown runs
// out. Implementations confirm the arming is still current with Release
// before acting on it.
type ExpireFunc func(sessionID id.SessionID, token Token)

// WarnFunc is invoked when the warning threshold is reached. It runs inside
// the countdown callback and must not call back into the Registry.
type WarnFunc func(sessionID id.SessionID, remaining time.Duration)

// Status is the countdown view for one session.
type Status struct {
	Active    bool
	Warned    bool
	Remaining time.Duration
}

type entry struct {
	ctrl  *Controller
	token Token
}

// Registry owns one Controller per armed session.
type Registry struct {
	clock     clock.Clock
	duration  time.Duration
	threshold time.Duration
	onExpire  ExpireFunc
	onWarning WarnFunc
	logger    *slog.Logger

	mu      sync.Mutex
	entries map[id.SessionID]*entry
	next    Token
}

type RegistryOption func(*Registry)

func WithClock(clk clock.Clock) RegistryOption {
	return func(r *Registry) {
		r.clock = clk
	}
}

// WithTimeouts sets the countdown length and how long before the end the warning fires.
func WithTimeouts(duration, warnBefore time.Duration) RegistryOption {
	return func(r *Registry) {
		r.duration = duration
		r.threshold = warnBefore
	}
}

func WithWarningHook(fn WarnFunc) RegistryOption {
	return func(r *Registry) {
		r.onWarning = fn
	}
}

func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

func NewRegistry(onExpire ExpireFunc, opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		clock:     clock.Real(),
		duration:  DefaultDuration,
		threshold: DefaultWarningBefore,
		onExpire:  onExpire,
		logger:    slog.Default(),
		entries:   make(map[id.SessionID]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := ValidateDurations(r.duration, r.threshold); err != nil {
		return nil, err
	}
	return r, nil
}

// Duration is the configured countdown length.
func (r *Registry) Duration() time.Duration { return r.duration }

// Arm starts a fresh countdown for the session, replacing any existing one.
func (r *Registry) Arm(sessionID id.SessionID) Token {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.entries[sessionID]; ok {
		old.ctrl.Stop()
	}
	r.next++
	token := r.next
	ctrl := NewController(r.clock)
	e := &entry{ctrl: ctrl, token: token}
	r.entries[sessionID] = e

	// Durations were validated by NewRegistry and the controller is new, so Start cannot fail.
	_ = ctrl.Start(r.duration, r.threshold,
		func(remaining time.Duration) { r.warn(sessionID, remaining) },
		func() { r.expire(sessionID, token) },
	)
	return token
}

// Extend restarts the session's countdown at the full duration.
func (r *Registry) Extend(sessionID id.SessionID) error {
	r.mu.Lock()
	e, ok := r.entries[sessionID]
	r.mu.Unlock()
	if !ok {
		return dErrors.New(dErrors.CodeInvalidTransition, "no active countdown for session")
	}
	return e.ctrl.Extend()
}

// Disarm stops and forgets the session's countdown.
func (r *Registry) Disarm(sessionID id.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[sessionID]; ok {
		e.ctrl.Stop()
		delete(r.entries, sessionID)
	}
}

// Release forgets the session's countdown if token is still the current
// arming. It reports whether the caller's expiry is authoritative.
func (r *Registry) Release(sessionID id.SessionID, token Token) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[sessionID]
	if !ok || e.token != token {
		return false
	}
	e.ctrl.Stop()
	delete(r.entries, sessionID)
	return true
}

func (r *Registry) Status(sessionID id.SessionID) Status {
	r.mu.Lock()
	e, ok := r.entries[sessionID]
	r.mu.Unlock()
	if !ok || e.ctrl.Phase() != PhaseRunning {
		return Status{}
	}
	return Status{
		Active:    true,
		Warned:    e.ctrl.Warned(),
		Remaining: e.ctrl.Remaining(),
	}
}

// DisarmAll stops every countdown. Used on shutdown so no expiry fires while
// stores are closing.
func (r *Registry) DisarmAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.entries)
	for sessionID, e := range r.entries {
		e.ctrl.Stop()
		delete(r.entries, sessionID)
	}
	return n
}

// Len reports how many sessions hold a countdown.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) warn(sessionID id.SessionID, remaining time.Duration) {
	r.logger.Debug("session timeout warning",
		"session_id", sessionID.String(),
		"remaining", remaining.String(),
	)
	if r.onWarning != nil {
		r.onWarning(sessionID, remaining)
	}
}

// expire hands off to a goroutine: the expiry handler takes the session lock,
// and callers holding that lock may be waiting in Controller.Stop.
func (r *Registry) expire(sessionID id.SessionID, token Token) {
	go func() {
		if r.onExpire == nil {
			r.Release(sessionID, token)
			return
		}
		r.onExpire(sessionID, token)
	}()
}
