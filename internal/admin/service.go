// Package admin serves the administrator dashboard and audit trail.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"ballotbox/internal/admin/types"
	dErrors "ballotbox/pkg/domain-errors"
	audit "ballotbox/pkg/platform/audit"
	"ballotbox/pkg/requestcontext"
)

// RecentActivityLimit is how many audit events the dashboard shows.
const RecentActivityLimit = 10

type RosterSummarizer interface {
	Summary(ctx context.Context) (*types.RosterSummary, error)
}

type ElectionStatusReader interface {
	Status(ctx context.Context) (electionID, status string)
}

// AuditReader queries the audit trail.
type AuditReader interface {
	List(ctx context.Context, filter audit.Filter) ([]audit.Event, error)
	Counts(ctx context.Context) (map[audit.Category]int, error)
}

type Service struct {
	roster   RosterSummarizer
	election ElectionStatusReader
	audit    AuditReader
	logger   *slog.Logger
}

func NewService(roster RosterSummarizer, election ElectionStatusReader, auditReader AuditReader, logger *slog.Logger) (*Service, error) {
	if roster == nil || election == nil || auditReader == nil {
		return nil, errors.New("roster, election and audit reader are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{roster: roster, election: election, audit: auditReader, logger: logger}, nil
}

// Dashboard assembles roster counts, turnout and recent activity. A failing
// audit store leaves RecentActivity empty rather than failing the page.
func (s *Service) Dashboard(ctx context.Context) (*types.Stats, error) {
	summary, err := s.roster.Summary(ctx)
	if err != nil {
		return nil, err
	}
	eid, status := s.election.Status(ctx)

	stats := &types.Stats{
		TotalStudents:  summary.Total,
		ActiveStudents: summary.Active,
		Voted:          summary.Voted,
		Pending:        summary.Pending,
		TurnoutPercent: turnout(summary.VotedActive, summary.Active),
		ElectionID:     eid,
		ElectionStatus: status,
		RecentActivity: []audit.Event{},
	}
	recent, err := s.audit.List(ctx, audit.Filter{Limit: RecentActivityLimit})
	if err != nil {
		s.logger.WarnContext(ctx, "recent activity unavailable",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return stats, nil
	}
	stats.RecentActivity = recent
	return stats, nil
}

// AuditTrail lists events newest first with totals for every category.
func (s *Service) AuditTrail(ctx context.Context, filter audit.Filter) (*types.AuditTrail, error) {
	events, err := s.audit.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorageUnavailable, "audit trail unavailable")
	}
	counts, err := s.audit.Counts(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorageUnavailable, "audit trail unavailable")
	}

	trail := &types.AuditTrail{Events: events, Counts: make(map[audit.Category]int, len(audit.Categories))}
	for _, c := range audit.Categories {
		trail.Counts[c] = counts[c]
		trail.Total += counts[c]
	}
	return trail, nil
}

// turnout is voted/eligible as a percentage with one decimal. Callers pass
// eligible voters only, so it stays within 0..100.
func turnout(voted, eligible int) float64 {
	if eligible <= 0 {
		return 0
	}
	return math.Round(float64(voted)*1000/float64(eligible)) / 10
}
