package models

import (
	"strings"

	dErrors "ballotbox/pkg/domain-errors"
)

const maxDisplayNameLength = 100

// AuthenticateRequest signs a voter into the current session. An empty
// voter_id is left for the state machine to reject.
type AuthenticateRequest struct {
	VoterID string `json:"voter_id"`
	Name    string `json:"name,omitempty"`
}

func (r *AuthenticateRequest) Validate() error {
	r.VoterID = strings.TrimSpace(r.VoterID)
	r.Name = strings.TrimSpace(r.Name)
	if len(r.Name) > maxDisplayNameLength {
		return dErrors.New(dErrors.CodeValidation, "name is too long")
	}
	return nil
}

// CastVoteRequest carries the ballot selection. A missing selection is
// reported by the state machine as missing_selection.
type CastVoteRequest struct {
	CandidateID string `json:"candidate_id"`
}

func (r *CastVoteRequest) Validate() error {
	r.CandidateID = strings.TrimSpace(r.CandidateID)
	return nil
}
