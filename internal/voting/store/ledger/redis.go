package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"ballotbox/internal/voting/models"
	id "ballotbox/pkg/domain"
	"ballotbox/pkg/platform/sentinel"
)

// recordScript writes the entry and the voter index in one step. Both keys
// share the election hash tag so the script is valid on a cluster.
var recordScript = redis.NewScript(`
if redis.call('SETNX', KEYS[1], ARGV[1]) == 1 then
	redis.call('SADD', KEYS[2], ARGV[2])
	return 1
end
return 0
`)

// RedisLedger keeps one key per voter plus a set of voters per election.
type RedisLedger struct {
	client redis.UniversalClient
}

func NewRedis(client redis.UniversalClient) *RedisLedger {
	return &RedisLedger{client: client}
}

func entryKeyFor(electionID id.ElectionID, voterID id.VoterID) string {
	return fmt.Sprintf("ballot:ledger:{%s}:%s", electionID, voterID)
}

func votersKey(electionID id.ElectionID) string {
	return fmt.Sprintf("ballot:voters:{%s}", electionID)
}

type entryJSON struct {
	ElectionID       string    `json:"election_id"`
	VoterID          string    `json:"voter_id"`
	ConfirmationCode string    `json:"confirmation_code"`
	CastAt           time.Time `json:"cast_at"`
}

func toJSON(e models.LedgerEntry) entryJSON {
	return entryJSON{
		ElectionID:       string(e.ElectionID),
		VoterID:          string(e.VoterID),
		ConfirmationCode: string(e.ConfirmationCode),
		CastAt:           e.CastAt,
	}
}

func (e entryJSON) entry() models.LedgerEntry {
	return models.LedgerEntry{
		ElectionID:       id.ElectionID(e.ElectionID),
		VoterID:          id.VoterID(e.VoterID),
		ConfirmationCode: id.ConfirmationCode(e.ConfirmationCode),
		CastAt:           e.CastAt,
	}
}

func (l *RedisLedger) Record(ctx context.Context, entry models.LedgerEntry) error {
	raw, err := json.Marshal(toJSON(entry))
	if err != nil {
		return fmt.Errorf("marshal ledger entry: %w", err)
	}
	keys := []string{entryKeyFor(entry.ElectionID, entry.VoterID), votersKey(entry.ElectionID)}
	inserted, err := recordScript.Run(ctx, l.client, keys, raw, string(entry.VoterID)).Int()
	if err != nil {
		return fmt.Errorf("%w: record ledger entry: %v", sentinel.ErrUnavailable, err)
	}
	if inserted == 0 {
		return fmt.Errorf("%w: voter %s already recorded", sentinel.ErrConflict, entry.VoterID)
	}
	return nil
}

func (l *RedisLedger) Has(ctx context.Context, electionID id.ElectionID, voterID id.VoterID) (bool, error) {
	n, err := l.client.Exists(ctx, entryKeyFor(electionID, voterID)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: check ledger entry: %v", sentinel.ErrUnavailable, err)
	}
	return n == 1, nil
}

func (l *RedisLedger) Get(ctx context.Context, electionID id.ElectionID, voterID id.VoterID) (*models.LedgerEntry, error) {
	raw, err := l.client.Get(ctx, entryKeyFor(electionID, voterID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get ledger entry: %v", sentinel.ErrUnavailable, err)
	}
	var stored entryJSON
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("%w: decode ledger entry: %v", sentinel.ErrInvalidState, err)
	}
	entry := stored.entry()
	return &entry, nil
}

func (l *RedisLedger) Count(ctx context.Context, electionID id.ElectionID) (int, error) {
	n, err := l.client.SCard(ctx, votersKey(electionID)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: count ledger: %v", sentinel.ErrUnavailable, err)
	}
	return int(n), nil
}

func (l *RedisLedger) VoterIDs(ctx context.Context, electionID id.ElectionID) ([]id.VoterID, error) {
	members, err := l.client.SMembers(ctx, votersKey(electionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: list ledger voters: %v", sentinel.ErrUnavailable, err)
	}
	sort.Strings(members)
	voters := make([]id.VoterID, len(members))
	for i, m := range members {
		voters[i] = id.VoterID(m)
	}
	return voters, nil
}
