package tally

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	id "ballotbox/pkg/domain"
	"ballotbox/pkg/platform/sentinel"
)

// RedisTally keeps one hash per election, candidate -> count.
type RedisTally struct {
	client redis.UniversalClient
}

func NewRedis(client redis.UniversalClient) *RedisTally {
	return &RedisTally{client: client}
}

func tallyKey(electionID id.ElectionID) string {
	return fmt.Sprintf("ballot:tally:{%s}", electionID)
}

func (t *RedisTally) Increment(ctx context.Context, electionID id.ElectionID, candidateID id.CandidateID) error {
	if err := t.client.HIncrBy(ctx, tallyKey(electionID), string(candidateID), 1).Err(); err != nil {
		return fmt.Errorf("%w: increment tally: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (t *RedisTally) Counts(ctx context.Context, electionID id.ElectionID) (map[id.CandidateID]int, error) {
	raw, err := t.client.HGetAll(ctx, tallyKey(electionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: read tally: %v", sentinel.ErrUnavailable, err)
	}
	out := make(map[id.CandidateID]int, len(raw))
	for candidate, v := range raw {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: tally for %s is %q", sentinel.ErrInvalidState, candidate, v)
		}
		out[id.CandidateID(candidate)] = n
	}
	return out, nil
}
