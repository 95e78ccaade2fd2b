// Package timeout implements the voter inactivity countdown: a warning before
// the deadline, then expiry.
package timeout

import (
	"sync"
	"time"

	dErrors "ballotbox/pkg/domain-errors"
	"ballotbox/pkg/platform/clock"
)

// Phase is the controller lifecycle position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseExpired
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseExpired:
		return "expired"
	case PhaseStopped:
		return "stopped"
	default:
		return "idle"
	}
}

// Controller runs one countdown. Every Start or Extend opens a new generation;
// timer callbacks from an older generation are dropped, so a reset can never
// deliver a stale warning or expiry.
type Controller struct {
	clock clock.Clock

	// cbMu is held for the whole of a callback so Stop can wait it out.
	cbMu sync.Mutex

	mu          sync.Mutex
	phase       Phase
	gen         uint64
	duration    time.Duration
	threshold   time.Duration
	deadline    time.Time
	warned      bool
	onWarning   func(remaining time.Duration)
	onExpire    func()
	warnTimer   clock.Timer
	expireTimer clock.Timer
}

func NewController(clk clock.Clock) *Controller {
	if clk == nil {
		clk = clock.Real()
	}
	return &Controller{clock: clk}
}

// ValidateDurations requires 0 < warnThreshold < duration.
func ValidateDurations(duration, warnThreshold time.Duration) error {
	if warnThreshold <= 0 || duration <= 0 || warnThreshold >= duration {
		return dErrors.New(dErrors.CodeInvalidInput, "warning threshold must be positive and shorter than the timeout")
	}
	return nil
}

// Start arms the countdown. onWarning fires once when warnThreshold remains;
// onExpire fires at the deadline. Callbacks run on the clock's goroutine and
// must not call Stop, directly or by waiting on a goroutine that does.
func (c *Controller) Start(duration, warnThreshold time.Duration, onWarning func(remaining time.Duration), onExpire func()) error {
	if err := ValidateDurations(duration, warnThreshold); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseRunning {
		return dErrors.New(dErrors.CodeInvalidTransition, "countdown already running")
	}
	c.duration = duration
	c.threshold = warnThreshold
	c.onWarning = onWarning
	c.onExpire = onExpire
	c.armLocked()
	return nil
}

// Extend restarts the countdown at the full duration and re-arms the warning.
func (c *Controller) Extend() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.phase {
	case PhaseRunning:
		c.armLocked()
		return nil
	case PhaseExpired:
		return dErrors.New(dErrors.CodeTimeoutExpired, "session timed out")
	default:
		return dErrors.New(dErrors.CodeInvalidTransition, "countdown not running")
	}
}

// Stop cancels the countdown and waits for a callback already in progress, so
// no callback runs after it returns. Stopping an idle or finished controller
// only waits.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.phase == PhaseRunning {
		c.gen++
		c.stopTimersLocked()
		c.phase = PhaseStopped
	}
	c.mu.Unlock()

	// Wait for an in-flight callback.
	c.cbMu.Lock()
	c.cbMu.Unlock() //nolint:staticcheck // empty critical section
}

// Remaining is the time left before expiry, zero unless running.
func (c *Controller) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseRunning {
		return 0
	}
	if left := c.deadline.Sub(c.clock.Now()); left > 0 {
		return left
	}
	return 0
}

// Warned reports whether the warning fired in the current cycle.
func (c *Controller) Warned() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.warned
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Controller) armLocked() {
	c.stopTimersLocked()
	c.gen++
	gen := c.gen
	c.phase = PhaseRunning
	c.warned = false
	c.deadline = c.clock.Now().Add(c.duration)
	// The warning timer is created first so equal deadlines still fire it ahead of expiry.
	c.warnTimer = c.clock.AfterFunc(c.duration-c.threshold, func() { c.fireWarning(gen) })
	c.expireTimer = c.clock.AfterFunc(c.duration, func() { c.fireExpire(gen) })
}

func (c *Controller) stopTimersLocked() {
	if c.warnTimer != nil {
		c.warnTimer.Stop()
		c.warnTimer = nil
	}
	if c.expireTimer != nil {
		c.expireTimer.Stop()
		c.expireTimer = nil
	}
}

func (c *Controller) fireWarning(gen uint64) {
	c.cbMu.Lock()
	defer c.cbMu.Unlock()

	c.mu.Lock()
	if c.gen != gen || c.phase != PhaseRunning || c.warned {
		c.mu.Unlock()
		return
	}
	c.warned = true
	remaining := c.deadline.Sub(c.clock.Now())
	cb := c.onWarning
	c.mu.Unlock()

	if cb != nil {
		cb(remaining)
	}
}

func (c *Controller) fireExpire(gen uint64) {
	c.cbMu.Lock()
	defer c.cbMu.Unlock()

	c.mu.Lock()
	if c.gen != gen || c.phase != PhaseRunning {
		c.mu.Unlock()
		return
	}
	// A warning delayed past the deadline is delivered first so it still precedes expiry.
	warnedBefore := c.warned
	c.warned = true
	warnCb := c.onWarning
	remaining := c.deadline.Sub(c.clock.Now())
	c.phase = PhaseExpired
	c.stopTimersLocked()
	cb := c.onExpire
	c.mu.Unlock()

	if !warnedBefore && warnCb != nil {
		warnCb(remaining)
	}
	if cb != nil {
		cb()
	}
}
