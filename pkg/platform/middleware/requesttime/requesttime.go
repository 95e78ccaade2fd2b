// Package requesttime pins one "now" per request so audit timestamps, cast
// times and countdown math inside a request all agree.
package requesttime

import (
	"net/http"

	"ballotbox/pkg/platform/clock"
	"ballotbox/pkg/requestcontext"
)

// Middleware stores the wall-clock time at request start in the context.
func Middleware(next http.Handler) http.Handler {
	return WithClock(clock.Real())(next)
}

// WithClock is Middleware with an injectable clock for tests.
func WithClock(clk clock.Clock) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), clk.Now())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
