package models

import (
	"strings"

	id "ballotbox/pkg/domain"
	dErrors "ballotbox/pkg/domain-errors"
)

type CreateStudentRequest struct {
	StudentID  string `json:"student_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Year       string `json:"year"`
	Status     string `json:"status,omitempty"`
}

func (r *CreateStudentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if _, err := parseStudentStatus(r.Status); err != nil {
		return err
	}
	return nil
}

// Student builds the record to register. Validation of the fields happens
// in the service so bulk imports share it.
func (r *CreateStudentRequest) Student() Student {
	status, _ := parseStudentStatus(r.Status)
	return Student{
		ID:         id.VoterID(r.StudentID),
		Name:       r.Name,
		Email:      r.Email,
		Department: r.Department,
		Year:       r.Year,
		Status:     status,
	}
}

// UpdateStudentRequest changes only the fields present in the body.
type UpdateStudentRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Department *string `json:"department,omitempty"`
	Year       *string `json:"year,omitempty"`
	Status     *string `json:"status,omitempty"`
}

func (r *UpdateStudentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Name == nil && r.Email == nil && r.Department == nil && r.Year == nil && r.Status == nil {
		return dErrors.New(dErrors.CodeValidation, "at least one field must be provided")
	}
	if r.Status != nil {
		if _, err := parseStudentStatus(*r.Status); err != nil {
			return err
		}
	}
	return nil
}

// Apply copies the present fields onto s.
func (r *UpdateStudentRequest) Apply(s *Student) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Email != nil {
		s.Email = *r.Email
	}
	if r.Department != nil {
		s.Department = *r.Department
	}
	if r.Year != nil {
		s.Year = *r.Year
	}
	if r.Status != nil {
		s.Status, _ = parseStudentStatus(*r.Status)
	}
}

type BulkRemoveRequest struct {
	StudentIDs []string `json:"student_ids"`
}

const maxBulkRemove = 500

func (r *BulkRemoveRequest) Validate() error {
	if r == nil || len(r.StudentIDs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "student_ids is required")
	}
	if len(r.StudentIDs) > maxBulkRemove {
		return dErrors.New(dErrors.CodeValidation, "too many student_ids")
	}
	return nil
}

func parseStudentStatus(s string) (StudentStatus, error) {
	switch st := StudentStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StudentActive, nil
	case StudentActive, StudentInactive:
		return st, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, "status must be active or inactive")
}
