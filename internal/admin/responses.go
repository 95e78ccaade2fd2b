package admin

import (
	"time"

	"ballotbox/internal/admin/types"
	audit "ballotbox/pkg/platform/audit"
)

type AuditEventResponse struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	Subject   string    `json:"subject,omitempty"`
	ActorID   string    `json:"actor_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Severity  string    `json:"severity"`
	RequestID string    `json:"request_id,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}

type DashboardResponse struct {
	TotalStudents  int                  `json:"total_students"`
	ActiveStudents int                  `json:"active_students"`
	Voted          int                  `json:"voted"`
	Pending        int                  `json:"pending"`
	TurnoutPercent float64              `json:"turnout_percent"`
	ElectionID     string               `json:"election_id"`
	ElectionStatus string               `json:"election_status"`
	RecentActivity []AuditEventResponse `json:"recent_activity"`
}

type AuditTrailResponse struct {
	Events []AuditEventResponse `json:"events"`
	Counts map[string]int       `json:"counts"`
	Total  int                  `json:"total"`
}

func newAuditEventResponse(e audit.Event) AuditEventResponse {
	return AuditEventResponse{
		ID:        e.ID.String(),
		Category:  string(e.Category),
		Action:    string(e.Action),
		Timestamp: e.Timestamp,
		Subject:   e.Subject,
		ActorID:   e.ActorID,
		Detail:    e.Detail,
		Severity:  string(e.Severity),
		RequestID: e.RequestID,
		ClientIP:  e.ClientIP,
		UserAgent: e.UserAgent,
	}
}

func newAuditEventResponses(events []audit.Event) []AuditEventResponse {
	out := make([]AuditEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, newAuditEventResponse(e))
	}
	return out
}

func newDashboardResponse(s *types.Stats) DashboardResponse {
	return DashboardResponse{
		TotalStudents:  s.TotalStudents,
		ActiveStudents: s.ActiveStudents,
		Voted:          s.Voted,
		Pending:        s.Pending,
		TurnoutPercent: s.TurnoutPercent,
		ElectionID:     s.ElectionID,
		ElectionStatus: s.ElectionStatus,
		RecentActivity: newAuditEventResponses(s.RecentActivity),
	}
}

func newAuditTrailResponse(t *types.AuditTrail) AuditTrailResponse {
	counts := make(map[string]int, len(t.Counts))
	for c, n := range t.Counts {
		counts[string(c)] = n
	}
	return AuditTrailResponse{
		Events: newAuditEventResponses(t.Events),
		Counts: counts,
		Total:  t.Total,
	}
}
