// Package models defines registered students and roster queries.
package models

import (
	"strings"
	"time"

	id "ballotbox/pkg/domain"
	dErrors "ballotbox/pkg/domain-errors"
	"ballotbox/pkg/email"
)

// StudentStatus controls eligibility. Inactive students cannot sign in to vote.
type StudentStatus string

const (
	StudentActive   StudentStatus = "active"
	StudentInactive StudentStatus = "inactive"
)

// VotingStatus is derived from the student status and the ballot ledger.
type VotingStatus string

const (
	VotingVoted    VotingStatus = "voted"
	VotingPending  VotingStatus = "pending"
	VotingInactive VotingStatus = "inactive"
)

func ParseVotingStatus(s string) (VotingStatus, error) {
	switch v := VotingStatus(strings.ToLower(strings.TrimSpace(s))); v {
	case "", VotingVoted, VotingPending, VotingInactive:
		return v, nil
	case "all":
		return "", nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "status must be voted, pending or inactive")
}

// Years are the academic years accepted by registration.
var Years = []string{"1st Year", "2nd Year", "3rd Year", "4th Year", "Graduate"}

// Student is one registered voter.
type Student struct {
	ID           id.VoterID
	Name         string
	Email        string
	Department   string
	Year         string
	RegisteredAt time.Time
	Status       StudentStatus
}

// StudentView pairs a student with their derived voting status.
type StudentView struct {
	Student
	VotingStatus VotingStatus
}

// VotingStatusFor derives the voting status.
func VotingStatusFor(s Student, voted bool) VotingStatus {
	switch {
	case voted:
		return VotingVoted
	case s.Status == StudentInactive:
		return VotingInactive
	default:
		return VotingPending
	}
}

const maxFieldLength = 120

// Normalize trims fields, upper-cases the student ID and spells the year
// the canonical way.
func (s *Student) Normalize() {
	s.ID = id.VoterID(strings.ToUpper(strings.TrimSpace(string(s.ID))))
	s.Name = strings.TrimSpace(s.Name)
	s.Email = email.Normalize(s.Email)
	s.Department = strings.TrimSpace(s.Department)
	s.Year = strings.TrimSpace(s.Year)
	for _, known := range Years {
		if strings.EqualFold(s.Year, known) {
			s.Year = known
		}
	}
	if s.Status == "" {
		s.Status = StudentActive
	}
}

// Validate reports the first invalid field as a validation error.
func (s Student) Validate() error {
	if _, err := id.ParseVoterID(string(s.ID)); err != nil {
		return dErrors.New(dErrors.CodeValidation, "student ID must be 6-12 uppercase letters or digits")
	}
	if s.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if s.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if !email.IsValid(s.Email) {
		return dErrors.New(dErrors.CodeValidation, "email address is invalid")
	}
	if s.Department == "" {
		return dErrors.New(dErrors.CodeValidation, "department is required")
	}
	if !isKnownYear(s.Year) {
		return dErrors.New(dErrors.CodeValidation, "academic year must be one of "+strings.Join(Years, ", "))
	}
	for _, f := range []string{s.Name, s.Email, s.Department} {
		if len(f) > maxFieldLength {
			return dErrors.New(dErrors.CodeValidation, "field exceeds maximum length")
		}
	}
	if s.Status != StudentActive && s.Status != StudentInactive {
		return dErrors.New(dErrors.CodeValidation, "status must be active or inactive")
	}
	return nil
}

func isKnownYear(y string) bool {
	for _, known := range Years {
		if strings.EqualFold(y, known) {
			return true
		}
	}
	return false
}
