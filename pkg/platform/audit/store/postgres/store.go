package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "ballotbox/pkg/domain"
	audit "ballotbox/pkg/platform/audit"
	txcontext "ballotbox/pkg/platform/tx"
)

// Schema creates the audit_events table. seq provides the insertion-order tie break.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_events (
	seq         BIGSERIAL PRIMARY KEY,
	id          UUID NOT NULL UNIQUE,
	category    TEXT NOT NULL,
	action      TEXT NOT NULL,
	occurred_at TIMESTAMPTZ NOT NULL,
	subject     TEXT NOT NULL DEFAULT '',
	actor_id    TEXT NOT NULL DEFAULT '',
	detail      TEXT NOT NULL DEFAULT '',
	severity    TEXT NOT NULL,
	request_id  TEXT NOT NULL DEFAULT '',
	client_ip   TEXT NOT NULL DEFAULT '',
	user_agent  TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS audit_events_category_idx ON audit_events (category, occurred_at DESC);
`

// Store implements audit.Store on PostgreSQL.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Append inserts the event. Re-delivery of the same event ID is ignored.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	event.Normalize()

	query := `
		INSERT INTO audit_events (
			id, category, action, occurred_at, subject, actor_id,
			detail, severity, request_id, client_ip, user_agent
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(event.ID),
		string(event.Category),
		string(event.Action),
		event.Timestamp,
		event.Subject,
		event.ActorID,
		event.Detail,
		string(event.Severity),
		event.RequestID,
		event.ClientIP,
		event.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// List returns matching events newest first. LIMIT NULL means no limit.
func (s *Store) List(ctx context.Context, filter audit.Filter) ([]audit.Event, error) {
	query := `
		SELECT seq, id, category, action, occurred_at, subject, actor_id,
			   detail, severity, request_id, client_ip, user_agent
		FROM audit_events
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR subject = $2)
		ORDER BY occurred_at DESC, seq DESC
		LIMIT NULLIF($3, 0)
	`
	rows, err := s.db.QueryContext(ctx, query, string(filter.Category), filter.Subject, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (s *Store) Counts(ctx context.Context) (map[audit.Category]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM audit_events GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("count audit events: %w", err)
	}
	defer rows.Close()

	counts := make(map[audit.Category]int, len(audit.Categories))
	for _, c := range audit.Categories {
		counts[c] = 0
	}
	for rows.Next() {
		var (
			category string
			n        int
		)
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("scan audit count: %w", err)
		}
		counts[audit.Category(category)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit counts: %w", err)
	}
	return counts, nil
}

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	var events []audit.Event
	for rows.Next() {
		var (
			event    audit.Event
			eventID  uuid.UUID
			category string
			action   string
			severity string
		)
		err := rows.Scan(
			&event.Seq,
			&eventID,
			&category,
			&action,
			&event.Timestamp,
			&event.Subject,
			&event.ActorID,
			&event.Detail,
			&severity,
			&event.RequestID,
			&event.ClientIP,
			&event.UserAgent,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.ID = id.EventID(eventID)
		event.Category = audit.Category(category)
		event.Action = audit.Action(action)
		event.Severity = audit.Severity(severity)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
