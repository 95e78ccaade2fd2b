// Package models defines the election, its candidates and the computed
// results.
package models

import (
	"strings"

	id "ballotbox/pkg/domain"
	dErrors "ballotbox/pkg/domain-errors"
)

// Status is whether ballots are being accepted.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusOpen:
		return StatusOpen, nil
	case StatusClosed:
		return StatusClosed, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "election status must be open or closed")
}

// Candidate is one ballot option.
type Candidate struct {
	ID          id.CandidateID
	Name        string
	Party       string
	Description string
}

// Election is the ballot definition. Status is the initial status; the live
// value is held by the status store.
type Election struct {
	ID         id.ElectionID
	Title      string
	Status     Status
	Candidates []Candidate
}

// Candidate returns the candidate with the given ID.
func (e Election) Candidate(candidateID id.CandidateID) (Candidate, bool) {
	for _, c := range e.Candidates {
		if c.ID == candidateID {
			return c, true
		}
	}
	return Candidate{}, false
}

// Validate requires an ID, a title, at least two candidates and unique
// candidate IDs.
func (e Election) Validate() error {
	if _, err := id.ParseElectionID(string(e.ID)); err != nil {
		return err
	}
	if strings.TrimSpace(e.Title) == "" {
		return dErrors.New(dErrors.CodeValidation, "election title is required")
	}
	if e.Status != StatusOpen && e.Status != StatusClosed {
		return dErrors.New(dErrors.CodeValidation, "election status must be open or closed")
	}
	if len(e.Candidates) < 2 {
		return dErrors.New(dErrors.CodeValidation, "an election needs at least two candidates")
	}
	seen := make(map[id.CandidateID]struct{}, len(e.Candidates))
	for _, c := range e.Candidates {
		if _, err := id.ParseCandidateID(string(c.ID)); err != nil {
			return err
		}
		if strings.TrimSpace(c.Name) == "" {
			return dErrors.New(dErrors.CodeValidation, "candidate "+string(c.ID)+" has no name")
		}
		if _, dup := seen[c.ID]; dup {
			return dErrors.New(dErrors.CodeValidation, "duplicate candidate "+string(c.ID))
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

// CandidateResult is one row of the results table.
type CandidateResult struct {
	Rank      int
	Candidate Candidate
	Votes     int
	// Percent of total votes, rounded to one decimal.
	Percent float64
}

// Results summarizes the tally for administrators.
type Results struct {
	ElectionID     id.ElectionID
	Title          string
	Status         Status
	Candidates     []CandidateResult
	TotalVotes     int
	EligibleVoters int
	// TurnoutPercent is eligible students who voted over EligibleVoters,
	// rounded to one decimal. It can differ from TotalVotes/EligibleVoters
	// once voters are removed or deactivated, and never exceeds 100.
	TurnoutPercent float64
	// Margin is the vote gap between first and second place.
	Margin int
}
