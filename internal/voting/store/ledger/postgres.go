package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ballotbox/internal/voting/models"
	id "ballotbox/pkg/domain"
	"ballotbox/pkg/platform/sentinel"
	txcontext "ballotbox/pkg/platform/tx"
)

// Schema creates the ballot_ledger table. The primary key is the at-most-once
// guarantee.
const Schema = `
CREATE TABLE IF NOT EXISTS ballot_ledger (
	election_id       TEXT NOT NULL,
	voter_id          TEXT NOT NULL,
	confirmation_code TEXT NOT NULL UNIQUE,
	cast_at           TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (election_id, voter_id)
);
`

// PostgresLedger joins a transaction carried in context so the entry and the
// tally increment commit together.
type PostgresLedger struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresLedger {
	return &PostgresLedger{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (l *PostgresLedger) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return l.db
}

func (l *PostgresLedger) Record(ctx context.Context, entry models.LedgerEntry) error {
	query := `
		INSERT INTO ballot_ledger (election_id, voter_id, confirmation_code, cast_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (election_id, voter_id) DO NOTHING
	`
	res, err := l.execer(ctx).ExecContext(ctx, query,
		string(entry.ElectionID),
		string(entry.VoterID),
		string(entry.ConfirmationCode),
		entry.CastAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: voter %s already recorded", sentinel.ErrConflict, entry.VoterID)
	}
	return nil
}

func (l *PostgresLedger) Has(ctx context.Context, electionID id.ElectionID, voterID id.VoterID) (bool, error) {
	var exists bool
	err := l.execer(ctx).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM ballot_ledger WHERE election_id = $1 AND voter_id = $2)`,
		string(electionID), string(voterID),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check ledger entry: %w", err)
	}
	return exists, nil
}

func (l *PostgresLedger) Get(ctx context.Context, electionID id.ElectionID, voterID id.VoterID) (*models.LedgerEntry, error) {
	var (
		entry models.LedgerEntry
		code  string
	)
	err := l.execer(ctx).QueryRowContext(ctx, `
		SELECT confirmation_code, cast_at
		FROM ballot_ledger
		WHERE election_id = $1 AND voter_id = $2
	`, string(electionID), string(voterID)).Scan(&code, &entry.CastAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	entry.ElectionID = electionID
	entry.VoterID = voterID
	entry.ConfirmationCode = id.ConfirmationCode(code)
	return &entry, nil
}

func (l *PostgresLedger) Count(ctx context.Context, electionID id.ElectionID) (int, error) {
	var n int
	err := l.execer(ctx).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ballot_ledger WHERE election_id = $1`, string(electionID),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count ledger: %w", err)
	}
	return n, nil
}

func (l *PostgresLedger) VoterIDs(ctx context.Context, electionID id.ElectionID) ([]id.VoterID, error) {
	rows, err := l.execer(ctx).QueryContext(ctx,
		`SELECT voter_id FROM ballot_ledger WHERE election_id = $1 ORDER BY voter_id`, string(electionID))
	if err != nil {
		return nil, fmt.Errorf("list ledger voters: %w", err)
	}
	defer rows.Close()

	var voters []id.VoterID
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan ledger voter: %w", err)
		}
		voters = append(voters, id.VoterID(v))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger voters: %w", err)
	}
	return voters, nil
}
