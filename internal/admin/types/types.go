// Package types holds the admin views of data owned by other modules.
package types

import audit "ballotbox/pkg/platform/audit"

// RosterSummary counts students by voting status. VotedActive is the
// turnout numerator.
type RosterSummary struct {
	Total       int
	Active      int
	Voted       int
	VotedActive int
	Pending     int
}

// Stats is the administrator dashboard.
type Stats struct {
	TotalStudents  int
	ActiveStudents int
	Voted          int
	Pending        int
	TurnoutPercent float64
	ElectionID     string
	ElectionStatus string
	RecentActivity []audit.Event
}

// AuditTrail is one filtered page of the audit log with per-category totals.
type AuditTrail struct {
	Events []audit.Event
	Counts map[audit.Category]int
	Total  int
}
