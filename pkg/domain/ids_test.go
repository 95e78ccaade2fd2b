package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "ballotbox/pkg/domain-errors"
)

// TestParseSessionID_Invariants validates the parsing invariant:
// "session IDs must be valid, non-empty, non-nil UUIDs"
func TestParseSessionID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseSessionID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseSessionID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseSessionID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseSessionID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, SessionID(validUUID), id)
		assert.False(t, id.IsNil())
	})
}

func TestParseVoterID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    VoterID
		wantErr bool
	}{
		{"student id", "STU001", "STU001", false},
		{"lower case is normalized", "stu002", "STU002", false},
		{"surrounding whitespace trimmed", "  ABC12345 ", "ABC12345", false},
		{"twelve characters", "ABCDEF123456", "ABCDEF123456", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"too short", "AB12", "", true},
		{"too long", "ABCDEFGHIJKLM", "", true},
		{"punctuation", "STU-001", "", true},
		{"SQL injection attempt", "'; DROP TABLE students;--", "", true},
		{"null byte", "STU\x00001", "", true},
		{"oversized input", strings.Repeat("A", 1000), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVoterID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSlugIDs(t *testing.T) {
	t.Run("candidate id accepts slugs", func(t *testing.T) {
		id, err := ParseCandidateID("candidate-2")
		require.NoError(t, err)
		assert.Equal(t, CandidateID("candidate-2"), id)
	})

	t.Run("election id accepts underscores", func(t *testing.T) {
		id, err := ParseElectionID("student_council_2026")
		require.NoError(t, err)
		assert.Equal(t, ElectionID("student_council_2026"), id)
	})

	for _, input := range []string{"", "   ", "Candidate 1", "../etc", strings.Repeat("a", 65)} {
		t.Run("rejects "+input, func(t *testing.T) {
			_, errCandidate := ParseCandidateID(input)
			_, errElection := ParseElectionID(input)
			require.Error(t, errCandidate)
			require.Error(t, errElection)
			assert.True(t, dErrors.HasCode(errCandidate, dErrors.CodeInvalidInput))
		})
	}
}
