package models

import "time"

// Result is the state machine's answer to every session operation.
type Result struct {
	State     SessionState
	Identity  *VoterIdentity
	Vote      *VoteRecord
	PriorVote bool
	// PriorVoteAt is set with PriorVote when the ledger entry was read.
	PriorVoteAt *time.Time
	// Expired is true when the inactivity timeout cleared the session.
	Expired bool
	// StorageDegraded is true when the session is held in process memory
	// because the configured store is unavailable.
	StorageDegraded bool
}

// ResultFrom projects a snapshot into a Result.
func ResultFrom(snap Snapshot) Result {
	c := snap.Clone()
	return Result{State: c.State, Identity: c.Identity, Vote: c.Vote}
}
