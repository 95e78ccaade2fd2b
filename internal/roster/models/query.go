package models

import (
	"strings"
	"time"

	dErrors "ballotbox/pkg/domain-errors"
)

// RegistrationWindow limits a listing to recent registrations.
type RegistrationWindow string

const (
	WindowAll     RegistrationWindow = ""
	WindowToday   RegistrationWindow = "today"
	WindowWeek    RegistrationWindow = "week"
	WindowMonth   RegistrationWindow = "month"
	WindowQuarter RegistrationWindow = "quarter"
)

func ParseRegistrationWindow(s string) (RegistrationWindow, error) {
	switch w := RegistrationWindow(strings.ToLower(strings.TrimSpace(s))); w {
	case WindowAll, WindowToday, WindowWeek, WindowMonth, WindowQuarter:
		return w, nil
	case "all":
		return WindowAll, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "registered must be today, week, month or quarter")
}

// Contains reports whether t falls inside the window ending at now. Today is
// the calendar day of now in now's location.
func (w RegistrationWindow) Contains(t, now time.Time) bool {
	switch w {
	case WindowToday:
		ty, tm, td := t.In(now.Location()).Date()
		ny, nm, nd := now.Date()
		return ty == ny && tm == nm && td == nd
	case WindowWeek:
		return !t.Before(now.Add(-7 * 24 * time.Hour))
	case WindowMonth:
		return !t.Before(now.AddDate(0, -1, 0))
	case WindowQuarter:
		return !t.Before(now.AddDate(0, -3, 0))
	default:
		return true
	}
}

type SortField string

const (
	SortByName       SortField = "name"
	SortByID         SortField = "id"
	SortByRegistered SortField = "registered"
)

func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return SortByName, nil
	case SortByName, SortByID, SortByRegistered:
		return f, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "sort must be name, id or registered")
}

const (
	DefaultPageSize = 25
	MaxPageSize     = 200
)

// ListFilter selects and orders a page of students.
type ListFilter struct {
	Search     string
	Status     VotingStatus
	Registered RegistrationWindow
	Sort       SortField
	Descending bool
	Page       int
	PageSize   int
}

// Normalize applies defaults: first page, 25 per page, sorted by name.
func (f *ListFilter) Normalize() {
	f.Search = strings.TrimSpace(f.Search)
	if f.Sort == "" {
		f.Sort = SortByName
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
}

// Matches applies the search, status and registration filters.
func (f ListFilter) Matches(v StudentView, now time.Time) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(v.Name), q) &&
			!strings.Contains(strings.ToLower(string(v.ID)), q) &&
			!strings.Contains(strings.ToLower(v.Email), q) {
			return false
		}
	}
	if f.Status != "" && v.VotingStatus != f.Status {
		return false
	}
	return f.Registered.Contains(v.RegisteredAt, now)
}

// StudentPage is one page of a filtered listing.
type StudentPage struct {
	Students   []StudentView
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// RowError reports why one import row was rejected. Row is the 1-based CSV
// record number, header included.
type RowError struct {
	Row       int
	StudentID string
	Message   string
}

// ImportReport summarizes a bulk import.
type ImportReport struct {
	Imported int
	Failed   int
	Errors   []RowError
}

// RosterCounts feeds the admin dashboard. Voted includes inactive students
// with a ledger entry; VotedActive counts only eligible ones and is the
// numerator for turnout.
type RosterCounts struct {
	Total       int
	Active      int
	Voted       int
	VotedActive int
	Pending     int
	Inactive    int
}
