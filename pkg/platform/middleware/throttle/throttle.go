// Package throttle limits how fast one client address may hit sensitive
// endpoints such as voter sign-in.
package throttle

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	dErrors "ballotbox/pkg/domain-errors"
	"ballotbox/pkg/platform/clock"
	"ballotbox/pkg/platform/httputil"
	request "ballotbox/pkg/platform/middleware/request"
	"ballotbox/pkg/requestcontext"
)

const (
	defaultIdleAfter  = 3 * time.Minute
	defaultRetryAfter = 5 * time.Second
)

// Limiter hands out one token bucket per client IP.
type Limiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idleAfter time.Duration
	clock     clock.Clock
	logger    *slog.Logger
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type Option func(*Limiter)

func WithClock(c clock.Clock) Option {
	return func(l *Limiter) {
		l.clock = c
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Limiter) {
		l.logger = logger
	}
}

// WithIdleAfter sets how long a client may stay silent before Sweep forgets it.
func WithIdleAfter(d time.Duration) Option {
	return func(l *Limiter) {
		if d > 0 {
			l.idleAfter = d
		}
	}
}

// NewPerMinute allows perMinute requests per client per minute with bursts of
// the same size. perMinute <= 0 disables limiting.
func NewPerMinute(perMinute int, opts ...Option) *Limiter {
	l := &Limiter{
		visitors:  make(map[string]*visitor),
		limit:     rate.Inf,
		burst:     1,
		idleAfter: defaultIdleAfter,
		clock:     clock.Real(),
		logger:    slog.Default(),
	}
	if perMinute > 0 {
		l.limit = rate.Every(time.Minute / time.Duration(perMinute))
		l.burst = perMinute
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow consumes one token for key.
func (l *Limiter) Allow(key string) bool {
	if l.limit == rate.Inf {
		return true
	}
	now := l.clock.Now()
	l.mu.Lock()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	l.mu.Unlock()
	return v.limiter.AllowN(now, 1)
}

// Sweep drops clients idle longer than the idle window and returns how many
// were removed.
func (l *Limiter) Sweep() int {
	cutoff := l.clock.Now().Add(-l.idleAfter)
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for key, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, key)
			removed++
		}
	}
	return removed
}

// Run sweeps on every interval until ctx is done.
func (l *Limiter) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.Sweep()
		}
	}
}

// Len reports how many clients are tracked.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// Middleware rejects over-limit clients with 429 and a Retry-After header.
// It keys on requestcontext.ClientIP, so metadata.ClientMetadata must run first.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)
		if ip == "" {
			ip = r.RemoteAddr
		}
		if !l.Allow(ip) {
			l.logger.WarnContext(ctx, "request throttled",
				"client_ip", ip,
				"path", r.URL.Path,
				"request_id", request.GetRequestID(ctx),
			)
			w.Header().Set("Retry-After", strconv.Itoa(int(defaultRetryAfter.Seconds())))
			httputil.WriteError(w, dErrors.New(dErrors.CodeTooManyRequests, "too many attempts, try again shortly"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
