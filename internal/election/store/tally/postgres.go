package tally

import (
	"context"
	"database/sql"
	"fmt"

	id "ballotbox/pkg/domain"
	"ballotbox/pkg/platform/sentinel"
	txcontext "ballotbox/pkg/platform/tx"
)

// Schema creates the ballot_tally table.
const Schema = `
CREATE TABLE IF NOT EXISTS ballot_tally (
	election_id  TEXT NOT NULL,
	candidate_id TEXT NOT NULL,
	votes        BIGINT NOT NULL DEFAULT 0,
	PRIMARY KEY (election_id, candidate_id)
);
`

// PostgresTally joins a transaction carried in context, so an increment
// commits or rolls back with its ledger entry.
type PostgresTally struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresTally {
	return &PostgresTally{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (t *PostgresTally) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return t.db
}

func (t *PostgresTally) Increment(ctx context.Context, electionID id.ElectionID, candidateID id.CandidateID) error {
	query := `
		INSERT INTO ballot_tally (election_id, candidate_id, votes)
		VALUES ($1, $2, 1)
		ON CONFLICT (election_id, candidate_id) DO UPDATE SET votes = ballot_tally.votes + 1
	`
	if _, err := t.execer(ctx).ExecContext(ctx, query, string(electionID), string(candidateID)); err != nil {
		return fmt.Errorf("%w: increment tally: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (t *PostgresTally) Counts(ctx context.Context, electionID id.ElectionID) (map[id.CandidateID]int, error) {
	query := `SELECT candidate_id, votes FROM ballot_tally WHERE election_id = $1`
	rows, err := t.execer(ctx).QueryContext(ctx, query, string(electionID))
	if err != nil {
		return nil, fmt.Errorf("%w: read tally: %v", sentinel.ErrUnavailable, err)
	}
	defer rows.Close()

	out := make(map[id.CandidateID]int)
	for rows.Next() {
		var candidate string
		var votes int
		if err := rows.Scan(&candidate, &votes); err != nil {
			return nil, fmt.Errorf("scan tally row: %w", err)
		}
		out[id.CandidateID(candidate)] = votes
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read tally: %v", sentinel.ErrUnavailable, err)
	}
	return out, nil
}
