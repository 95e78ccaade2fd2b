// Package models defines the voter session snapshot and the durable ballot
// ledger entry.
package models

import (
	"time"

	id "ballotbox/pkg/domain"
	dErrors "ballotbox/pkg/domain-errors"
)

// SessionState is the voter's position in the voting flow.
type SessionState string

const (
	StateUnauthenticated SessionState = "unauthenticated"
	StateAuthenticated   SessionState = "authenticated"
	StateVoted           SessionState = "voted"
	// StateExpired is reported by Expire and never persisted.
	StateExpired SessionState = "expired"
)

func (s SessionState) IsValid() bool {
	switch s {
	case StateUnauthenticated, StateAuthenticated, StateVoted, StateExpired:
		return true
	}
	return false
}

// VoterIdentity is the authenticated voter for one session.
type VoterIdentity struct {
	VoterID         id.VoterID
	DisplayName     string
	AuthenticatedAt time.Time
}

// VoteRecord is the fact that a vote was cast. SelectionID lives only in the
// session snapshot for receipt display; the ledger never stores it.
type VoteRecord struct {
	VoterID          id.VoterID
	SelectionID      id.CandidateID
	CastAt           time.Time
	ConfirmationCode id.ConfirmationCode
}

// Snapshot is the single record a SessionStore reads and writes.
type Snapshot struct {
	Identity *VoterIdentity
	State    SessionState
	Vote     *VoteRecord
}

// Unauthenticated is the snapshot for a session with no stored state.
func Unauthenticated() Snapshot {
	return Snapshot{State: StateUnauthenticated}
}

// Validate rejects state/identity/vote combinations that cannot occur.
func (s Snapshot) Validate() error {
	switch s.State {
	case StateUnauthenticated:
		if s.Identity != nil || s.Vote != nil {
			return dErrors.New(dErrors.CodeInvariantViolation, "unauthenticated session cannot carry identity or vote")
		}
	case StateAuthenticated:
		if s.Identity == nil {
			return dErrors.New(dErrors.CodeInvariantViolation, "authenticated session requires identity")
		}
		if s.Vote != nil {
			return dErrors.New(dErrors.CodeInvariantViolation, "authenticated session cannot carry a vote")
		}
	case StateVoted:
		if s.Identity == nil || s.Vote == nil {
			return dErrors.New(dErrors.CodeInvariantViolation, "voted session requires identity and vote")
		}
		if s.Vote.VoterID != s.Identity.VoterID {
			return dErrors.New(dErrors.CodeInvariantViolation, "vote belongs to a different voter")
		}
		if s.Vote.ConfirmationCode == "" {
			return dErrors.New(dErrors.CodeInvariantViolation, "vote requires a confirmation code")
		}
	case StateExpired:
		return dErrors.New(dErrors.CodeInvariantViolation, "expired state is never persisted")
	default:
		return dErrors.New(dErrors.CodeInvariantViolation, "unknown session state")
	}
	return nil
}

// Clone returns a deep copy so stores never share pointers with callers.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{State: s.State}
	if s.Identity != nil {
		identity := *s.Identity
		out.Identity = &identity
	}
	if s.Vote != nil {
		vote := *s.Vote
		out.Vote = &vote
	}
	return out
}

// LedgerEntry is the durable per-voter participation record. It survives
// logout and expiry and carries no selection.
type LedgerEntry struct {
	ElectionID       id.ElectionID
	VoterID          id.VoterID
	ConfirmationCode id.ConfirmationCode
	CastAt           time.Time
}

// Receipt is shown on the confirmation screen.
type Receipt struct {
	ElectionID       id.ElectionID
	ConfirmationCode id.ConfirmationCode
	VoterID          id.VoterID
	DisplayName      string
	SelectionID      id.CandidateID
	SelectionName    string
	CastAt           time.Time
}
