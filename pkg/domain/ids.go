// Package domain holds typed identifiers shared across the ballot service.
//
// Typed IDs keep session, event and voter identifiers from being mixed up at
// compile time. Parse functions are the trust boundary for external input and
// return CodeInvalidInput errors.
package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	dErrors "ballotbox/pkg/domain-errors"
)

// SessionID identifies one voter session (the value carried by the session cookie).
type SessionID uuid.UUID

// EventID identifies one audit event.
type EventID uuid.UUID

// VoterID is a student identifier: 6 to 12 upper-case letters or digits.
type VoterID string

// CandidateID references a ballot option within an election.
type CandidateID string

// ElectionID identifies an election instance. At-most-once voting is scoped to it.
type ElectionID string

// ConfirmationCode is the receipt handle returned after a successful cast.
type ConfirmationCode string

var voterIDPattern = regexp.MustCompile(`^[A-Z0-9]{6,12}$`)

const maxSlugLength = 64

func NewSessionID() SessionID { return SessionID(uuid.New()) }

func NewEventID() EventID { return EventID(uuid.New()) }

func ParseSessionID(s string) (SessionID, error) {
	u, err := parseUUID(s, "session ID")
	return SessionID(u), err
}

func ParseEventID(s string) (EventID, error) {
	u, err := parseUUID(s, "event ID")
	return EventID(u), err
}

// ParseVoterID trims and upper-cases s before validating it.
func ParseVoterID(s string) (VoterID, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if normalized == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "voter ID is required")
	}
	if !voterIDPattern.MatchString(normalized) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "voter ID must be 6-12 letters or digits")
	}
	return VoterID(normalized), nil
}

func ParseCandidateID(s string) (CandidateID, error) {
	v, err := parseSlug(s, "candidate ID")
	return CandidateID(v), err
}

func ParseElectionID(s string) (ElectionID, error) {
	v, err := parseSlug(s, "election ID")
	return ElectionID(v), err
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}

// parseSlug accepts lower-case letters, digits, '-' and '_'.
func parseSlug(s, label string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	if len(v) > maxSlugLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, label+" is too long")
	}
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return "", dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
		}
	}
	return v, nil
}

func (id SessionID) String() string { return uuid.UUID(id).String() }
func (id SessionID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id EventID) String() string   { return uuid.UUID(id).String() }
func (id EventID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }

func (id VoterID) String() string         { return string(id) }
func (id CandidateID) String() string     { return string(id) }
func (id ElectionID) String() string      { return string(id) }
func (c ConfirmationCode) String() string { return string(c) }
