package models

import (
	"strings"

	dErrors "ballotbox/pkg/domain-errors"
)

// TurnoutGroup is the roster field a turnout breakdown is grouped by.
type TurnoutGroup string

const (
	GroupByDepartment TurnoutGroup = "department"
	GroupByYear       TurnoutGroup = "year"
)

// ParseTurnoutGroup defaults to department.
func ParseTurnoutGroup(raw string) (TurnoutGroup, error) {
	switch g := TurnoutGroup(strings.ToLower(strings.TrimSpace(raw))); g {
	case "":
		return GroupByDepartment, nil
	case GroupByDepartment, GroupByYear:
		return g, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "by must be department or year")
	}
}

// TurnoutFilter narrows a breakdown to one department and/or year. Empty or
// "all" matches everything; matching ignores case.
type TurnoutFilter struct {
	GroupBy    TurnoutGroup
	Department string
	Year       string
}

func (f *TurnoutFilter) Normalize() {
	if f.GroupBy == "" {
		f.GroupBy = GroupByDepartment
	}
	f.Department = normalizeAll(f.Department)
	f.Year = normalizeAll(f.Year)
}

func normalizeAll(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

// Includes reports whether an active student falls inside the filter.
func (f TurnoutFilter) Includes(s Student) bool {
	if f.Department != "" && !strings.EqualFold(s.Department, f.Department) {
		return false
	}
	if f.Year != "" && !strings.EqualFold(s.Year, f.Year) {
		return false
	}
	return true
}

// Key is the group a student belongs to.
func (f TurnoutFilter) Key(s Student) string {
	if f.GroupBy == GroupByYear {
		return s.Year
	}
	return s.Department
}

// TurnoutRow is participation within one group of active students.
type TurnoutRow struct {
	Group    string
	Eligible int
	Voted    int
	Percent  float64
}

// TurnoutBreakdown covers active students only; rows are sorted by group.
type TurnoutBreakdown struct {
	GroupBy  TurnoutGroup
	Rows     []TurnoutRow
	Eligible int
	Voted    int
	Percent  float64
}
