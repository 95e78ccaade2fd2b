package models

import (
	"time"

	id "ballotbox/pkg/domain"
)

// Record is the flat persisted layout of a Snapshot.
type Record struct {
	VoterID         string          `json:"voter_id,omitempty"`
	DisplayName     string          `json:"display_name,omitempty"`
	SessionState    SessionState    `json:"session_state"`
	AuthenticatedAt *time.Time      `json:"authenticated_at,omitempty"`
	VoteRecord      *VoteRecordJSON `json:"vote_record"`
}

type VoteRecordJSON struct {
	SelectionID      string    `json:"selection_id"`
	CastAt           time.Time `json:"cast_at"`
	ConfirmationCode string    `json:"confirmation_code"`
}

// ToRecord flattens a snapshot for storage.
func (s Snapshot) ToRecord() Record {
	r := Record{SessionState: s.State}
	if s.Identity != nil {
		r.VoterID = string(s.Identity.VoterID)
		r.DisplayName = s.Identity.DisplayName
		at := s.Identity.AuthenticatedAt
		r.AuthenticatedAt = &at
	}
	if s.Vote != nil {
		r.VoteRecord = &VoteRecordJSON{
			SelectionID:      string(s.Vote.SelectionID),
			CastAt:           s.Vote.CastAt,
			ConfirmationCode: string(s.Vote.ConfirmationCode),
		}
	}
	return r
}

// Snapshot rebuilds and validates the snapshot.
func (r Record) Snapshot() (Snapshot, error) {
	s := Snapshot{State: r.SessionState}
	if r.VoterID != "" {
		identity := &VoterIdentity{
			VoterID:     id.VoterID(r.VoterID),
			DisplayName: r.DisplayName,
		}
		if r.AuthenticatedAt != nil {
			identity.AuthenticatedAt = *r.AuthenticatedAt
		}
		s.Identity = identity
	}
	if r.VoteRecord != nil {
		s.Vote = &VoteRecord{
			VoterID:          id.VoterID(r.VoterID),
			SelectionID:      id.CandidateID(r.VoteRecord.SelectionID),
			CastAt:           r.VoteRecord.CastAt,
			ConfirmationCode: id.ConfirmationCode(r.VoteRecord.ConfirmationCode),
		}
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
