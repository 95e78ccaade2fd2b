package throttle

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ballotbox/pkg/platform/clock"
	"ballotbox/pkg/requestcontext"
	"ballotbox/pkg/testutil"
)

var start = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestAllowRefillsOverTime(t *testing.T) {
	clk := clock.NewManual(start)
	l := NewPerMinute(2, WithClock(clk))

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"), "burst exhausted")
	assert.True(t, l.Allow("10.0.0.2"), "clients are limited independently")

	clk.Advance(30 * time.Second)
	assert.True(t, l.Allow("10.0.0.1"), "one token refilled after 30s at 2/min")
}

func TestDisabledLimiterAllowsEverything(t *testing.T) {
	l := NewPerMinute(0)
	for range 100 {
		assert.True(t, l.Allow("10.0.0.1"))
	}
	assert.Zero(t, l.Len())
}

func TestSweepForgetsIdleClients(t *testing.T) {
	clk := clock.NewManual(start)
	l := NewPerMinute(10, WithClock(clk), WithIdleAfter(time.Minute))

	l.Allow("10.0.0.1")
	clk.Advance(45 * time.Second)
	l.Allow("10.0.0.2")
	clk.Advance(30 * time.Second)

	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 1, l.Len())
}

func TestMiddlewareReturns429(t *testing.T) {
	clk := clock.NewManual(start)
	l := NewPerMinute(1, WithClock(clk))
	handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	newReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/voter/session", nil)
		return req.WithContext(requestcontext.WithClientMetadata(req.Context(), "203.0.113.5", ""))
	}

	testutil.AssertStatus(t, testutil.DoRequest(handler, newReq()), http.StatusOK)

	rr := testutil.DoRequest(handler, newReq())
	testutil.AssertStatusAndError(t, rr, http.StatusTooManyRequests, "too_many_requests")
	assert.Equal(t, "5", rr.Header().Get("Retry-After"))
}
