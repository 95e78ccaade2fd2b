package models

import "time"

// SessionResponse is the voter-facing view of a Result.
type SessionResponse struct {
	State       SessionState  `json:"state"`
	VoterID     string        `json:"voter_id,omitempty"`
	DisplayName string        `json:"display_name,omitempty"`
	Vote        *VoteResponse `json:"vote,omitempty"`
	PriorVote   bool          `json:"prior_vote"`
	PriorVoteAt *time.Time    `json:"prior_vote_at,omitempty"`
	Expired     bool          `json:"expired,omitempty"`
	// StorageWarning tells the voter their session is only held by this
	// server instance until storage recovers.
	StorageWarning string `json:"storage_warning,omitempty"`
}

type VoteResponse struct {
	CandidateID      string    `json:"candidate_id"`
	ConfirmationCode string    `json:"confirmation_code"`
	CastAt           time.Time `json:"cast_at"`
}

type ReceiptResponse struct {
	ElectionID       string    `json:"election_id"`
	ConfirmationCode string    `json:"confirmation_code"`
	VoterID          string    `json:"voter_id"`
	DisplayName      string    `json:"display_name"`
	CandidateID      string    `json:"candidate_id"`
	CandidateName    string    `json:"candidate_name,omitempty"`
	CastAt           time.Time `json:"cast_at"`
}

type TimeoutResponse struct {
	Active           bool `json:"active"`
	Warning          bool `json:"warning"`
	RemainingSeconds int  `json:"remaining_seconds"`
}

const storageWarningText = "session storage is degraded; your session may be lost if this server restarts"

// NewSessionResponse maps a Result for the voter API.
func NewSessionResponse(r Result) SessionResponse {
	resp := SessionResponse{
		State:       r.State,
		PriorVote:   r.PriorVote,
		PriorVoteAt: r.PriorVoteAt,
		Expired:     r.Expired,
	}
	if r.Identity != nil {
		resp.VoterID = r.Identity.VoterID.String()
		resp.DisplayName = r.Identity.DisplayName
	}
	if r.Vote != nil {
		resp.Vote = &VoteResponse{
			CandidateID:      r.Vote.SelectionID.String(),
			ConfirmationCode: r.Vote.ConfirmationCode.String(),
			CastAt:           r.Vote.CastAt,
		}
	}
	if r.StorageDegraded {
		resp.StorageWarning = storageWarningText
	}
	return resp
}

func NewReceiptResponse(r *Receipt) ReceiptResponse {
	return ReceiptResponse{
		ElectionID:       r.ElectionID.String(),
		ConfirmationCode: r.ConfirmationCode.String(),
		VoterID:          r.VoterID.String(),
		DisplayName:      r.DisplayName,
		CandidateID:      r.SelectionID.String(),
		CandidateName:    r.SelectionName,
		CastAt:           r.CastAt,
	}
}

// NewTimeoutResponse rounds the remaining time up so a countdown never shows
// zero while the session is still live.
func NewTimeoutResponse(active, warned bool, remaining time.Duration) TimeoutResponse {
	secs := int((remaining + time.Second - 1) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return TimeoutResponse{Active: active, Warning: warned, RemainingSeconds: secs}
}
