package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	electionservice "ballotbox/internal/election/service"
	"ballotbox/internal/election/store/status"
	"ballotbox/internal/election/store/tally"
	"ballotbox/internal/platform/config"
	"ballotbox/internal/platform/postgres"
	platformredis "ballotbox/internal/platform/redis"
	rosterservice "ballotbox/internal/roster/service"
	rosterstore "ballotbox/internal/roster/store"
	votingmetrics "ballotbox/internal/voting/metrics"
	"ballotbox/internal/voting/models"
	"ballotbox/internal/voting/store/ledger"
	"ballotbox/internal/voting/store/session"
	id "ballotbox/pkg/domain"
	audit "ballotbox/pkg/platform/audit"
	auditmemory "ballotbox/pkg/platform/audit/store/memory"
	auditpostgres "ballotbox/pkg/platform/audit/store/postgres"
	"ballotbox/pkg/platform/tx"
)

type ledgerStore interface {
	Record(ctx context.Context, entry models.LedgerEntry) error
	Has(ctx context.Context, electionID id.ElectionID, voterID id.VoterID) (bool, error)
	Get(ctx context.Context, electionID id.ElectionID, voterID id.VoterID) (*models.LedgerEntry, error)
	VoterIDs(ctx context.Context, electionID id.ElectionID) ([]id.VoterID, error)
}

type tallyStore interface {
	Increment(ctx context.Context, electionID id.ElectionID, candidateID id.CandidateID) error
	Counts(ctx context.Context, electionID id.ElectionID) (map[id.CandidateID]int, error)
}

// backends holds every store selected by configuration. PostgreSQL, when
// configured, owns the durable records (ledger, tally, roster, audit); Redis
// owns sessions and the election switch, and the ledger and tally when there
// is no database. Memory covers whatever is left.
type backends struct {
	redis *platformredis.Client
	db    *sql.DB

	ledger   ledgerStore
	tally    tallyStore
	status   electionservice.StatusStore
	sessions session.Backend
	roster   rosterservice.Store
	audit    audit.Store
	tx       tx.Runner
}

func openBackends(ctx context.Context, cfg config.Server, log *slog.Logger) (*backends, error) {
	b := &backends{
		ledger:   ledger.NewInMemory(),
		tally:    tally.NewInMemory(),
		status:   status.NewInMemory(),
		sessions: session.NewInMemory(),
		roster:   rosterstore.NewInMemory(),
		audit:    auditmemory.NewInMemoryStore(),
		tx:       tx.NoopRunner{},
	}

	rc, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if rc != nil {
		b.redis = rc
		b.ledger = ledger.NewRedis(rc.Client)
		b.tally = tally.NewRedis(rc.Client)
		b.status = status.NewRedis(rc.Client)
		b.sessions = session.NewRedis(rc.Client, cfg.Session.CookieTTL, log)
		log.InfoContext(ctx, "redis configured", "addr", rc.Options().Addr)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		b.close()
		return nil, err
	}
	if db != nil {
		if err := postgres.ApplySchema(ctx, db, ledger.Schema, tally.Schema, rosterstore.Schema, auditpostgres.Schema); err != nil {
			_ = db.Close()
			b.close()
			return nil, fmt.Errorf("prepare database: %w", err)
		}
		b.db = db
		b.ledger = ledger.NewPostgres(db)
		b.tally = tally.NewPostgres(db)
		b.roster = rosterstore.NewPostgres(db)
		b.audit = auditpostgres.New(db)
		b.tx = tx.NewSQLRunner(db)
		log.InfoContext(ctx, "postgres configured")
	}
	return b, nil
}

// resilientSessions wraps the session backend with the in-memory fallback and
// reports outages to metrics and the audit trail.
func (b *backends) resilientSessions(log *slog.Logger, m *votingmetrics.Metrics, emit func(context.Context, audit.Event) error) *session.ResilientStore {
	return session.NewResilient(b.sessions,
		session.WithLogger(log),
		session.WithStateChange(func(ctx context.Context, degraded bool) {
			m.SetStorageDegraded(degraded)
			action := audit.ActionStorageRestored
			if degraded {
				action = audit.ActionStorageDegraded
			}
			if err := emit(ctx, audit.NewEvent(ctx, action, "session-store", "")); err != nil {
				log.WarnContext(ctx, "failed to audit storage state change", "error", err)
			}
		}),
	)
}

// ping reports the first unhealthy backend.
func (b *backends) ping(ctx context.Context) error {
	if b.redis != nil {
		if err := b.redis.Health(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	if b.db != nil {
		if err := b.db.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	return nil
}

func (b *backends) close() {
	if b.redis != nil {
		_ = b.redis.Close()
	}
	if b.db != nil {
		_ = b.db.Close()
	}
}
