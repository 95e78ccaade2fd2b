package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "ballotbox/pkg/domain-errors"
)

var castAt = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func votedSnapshot() Snapshot {
	return Snapshot{
		State: StateVoted,
		Identity: &VoterIdentity{
			VoterID:         "STU003",
			DisplayName:     "Amy",
			AuthenticatedAt: castAt.Add(-time.Minute),
		},
		Vote: &VoteRecord{
			VoterID:          "STU003",
			SelectionID:      "candidate-1",
			CastAt:           castAt,
			ConfirmationCode: "VT-2026-ABCDEFGHJK",
		},
	}
}

func TestSnapshotValidate(t *testing.T) {
	identity := &VoterIdentity{VoterID: "STU001", DisplayName: "Sarah"}
	vote := &VoteRecord{VoterID: "STU001", SelectionID: "candidate-2", ConfirmationCode: "VT-2026-X"}

	tests := []struct {
		name    string
		snap    Snapshot
		wantErr bool
	}{
		{"empty unauthenticated", Unauthenticated(), false},
		{"unauthenticated with identity", Snapshot{State: StateUnauthenticated, Identity: identity}, true},
		{"authenticated", Snapshot{State: StateAuthenticated, Identity: identity}, false},
		{"authenticated without identity", Snapshot{State: StateAuthenticated}, true},
		{"authenticated with vote", Snapshot{State: StateAuthenticated, Identity: identity, Vote: vote}, true},
		{"voted", Snapshot{State: StateVoted, Identity: identity, Vote: vote}, false},
		{"voted without vote", Snapshot{State: StateVoted, Identity: identity}, true},
		{"voted for another voter", Snapshot{State: StateVoted, Identity: &VoterIdentity{VoterID: "STU002"}, Vote: vote}, true},
		{"voted without code", Snapshot{State: StateVoted, Identity: identity, Vote: &VoteRecord{VoterID: "STU001"}}, true},
		{"expired is never stored", Snapshot{State: StateExpired}, true},
		{"unknown state", Snapshot{State: "limbo"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snap.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSnapshotCloneIsDeep(t *testing.T) {
	original := votedSnapshot()
	clone := original.Clone()
	clone.Identity.DisplayName = "changed"
	clone.Vote.SelectionID = "candidate-4"

	assert.Equal(t, "Amy", original.Identity.DisplayName)
	assert.Equal(t, "candidate-1", string(original.Vote.SelectionID))
}

func TestRecordRoundTrip(t *testing.T) {
	for name, snap := range map[string]Snapshot{
		"unauthenticated": Unauthenticated(),
		"authenticated": {
			State:    StateAuthenticated,
			Identity: &VoterIdentity{VoterID: "STU001", DisplayName: "Sarah", AuthenticatedAt: castAt},
		},
		"voted": votedSnapshot(),
	} {
		t.Run(name, func(t *testing.T) {
			raw, err := json.Marshal(snap.ToRecord())
			require.NoError(t, err)

			var rec Record
			require.NoError(t, json.Unmarshal(raw, &rec))
			got, err := rec.Snapshot()
			require.NoError(t, err)
			assert.Equal(t, snap, got)
		})
	}
}

func TestRecordLayout(t *testing.T) {
	raw, err := json.Marshal(votedSnapshot().ToRecord())
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Equal(t, "STU003", flat["voter_id"])
	assert.Equal(t, "voted", flat["session_state"])
	vote, ok := flat["vote_record"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "VT-2026-ABCDEFGHJK", vote["confirmation_code"])

	raw, err = json.Marshal(Unauthenticated().ToRecord())
	require.NoError(t, err)
	assert.JSONEq(t, `{"session_state":"unauthenticated","vote_record":null}`, string(raw))
}

func TestRecordRejectsInconsistentLayout(t *testing.T) {
	rec := Record{SessionState: StateVoted, VoterID: "STU001"}
	_, err := rec.Snapshot()
	require.Error(t, err)
}
