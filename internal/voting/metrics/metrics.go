package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the voting state machine.
type Metrics struct {
	// Operation outcomes by operation and result code ("ok" on success)
	Operations *prometheus.CounterVec

	OperationLatency *prometheus.HistogramVec

	VotesCast prometheus.Counter

	DuplicateAttempts prometheus.Counter

	SessionsExpired prometheus.Counter

	// Sessions with an armed inactivity timer
	ActiveSessions prometheus.Gauge

	// 1 while the session store circuit is open
	StorageDegraded prometheus.Gauge
}

// New registers the voting metrics with the default registry. Call once per process.
func New() *Metrics {
	return &Metrics{
		Operations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ballot_voting_operations_total",
			Help: "Voting operations by operation and outcome code",
		}, []string{"operation", "outcome"}),

		OperationLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ballot_voting_operation_duration_seconds",
			Help:    "Duration of voting state machine operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),

		VotesCast: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ballot_votes_cast_total",
			Help: "Ballots recorded in the ledger",
		}),

		DuplicateAttempts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ballot_duplicate_vote_attempts_total",
			Help: "Vote attempts rejected because the voter already voted",
		}),

		SessionsExpired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ballot_sessions_expired_total",
			Help: "Sessions cleared by the inactivity timeout",
		}),

		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ballot_active_sessions",
			Help: "Sessions with an armed inactivity timer",
		}),

		StorageDegraded: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ballot_session_storage_degraded",
			Help: "1 while session storage is served from the in-memory fallback",
		}),
	}
}

// ObserveOperation records the outcome and latency of one operation.
func (m *Metrics) ObserveOperation(operation, outcome string, d time.Duration) {
	if m != nil {
		m.Operations.WithLabelValues(operation, outcome).Inc()
		m.OperationLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementVotesCast() {
	if m != nil {
		m.VotesCast.Inc()
	}
}

func (m *Metrics) IncrementDuplicateAttempts() {
	if m != nil {
		m.DuplicateAttempts.Inc()
	}
}

func (m *Metrics) IncrementSessionsExpired() {
	if m != nil {
		m.SessionsExpired.Inc()
	}
}

// SetActiveSessions reports the number of armed timers.
func (m *Metrics) SetActiveSessions(n int) {
	if m != nil {
		m.ActiveSessions.Set(float64(n))
	}
}

func (m *Metrics) SetStorageDegraded(degraded bool) {
	if m != nil {
		if degraded {
			m.StorageDegraded.Set(1)
			return
		}
		m.StorageDegraded.Set(0)
	}
}
