package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "ballotbox/pkg/domain"
	audit "ballotbox/pkg/platform/audit"
)

func TestPayloadFrom(t *testing.T) {
	eventID := id.NewEventID()
	ts := time.Date(2026, 5, 1, 8, 0, 0, 0, time.FixedZone("CET", 3600))
	p := PayloadFrom(audit.Event{
		ID:        eventID,
		Category:  audit.CategoryVote,
		Action:    audit.ActionVoteCast,
		Timestamp: ts,
		Subject:   "STU001",
		Severity:  audit.SeverityInfo,
	})

	assert.Equal(t, eventID.String(), p.ID)
	assert.Equal(t, "vote_cast", p.Action)
	assert.Equal(t, "2026-05-01T07:00:00Z", p.Timestamp)
	assert.Equal(t, "STU001", p.Subject)
}

func TestNewSinkValidatesConfig(t *testing.T) {
	_, err := NewSink(nil, "ballot-audit", nil)
	require.Error(t, err)

	_, err = NewSink([]string{"localhost:9092"}, "", nil)
	require.Error(t, err)
}
