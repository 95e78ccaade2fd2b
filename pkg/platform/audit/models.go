package audit

import (
	"context"
	"time"

	id "ballotbox/pkg/domain"
	"ballotbox/pkg/requestcontext"
)

// Category groups audit events for the administrator audit trail filter.
type Category string

const (
	CategoryVote     Category = "vote"
	CategoryAuth     Category = "auth"
	CategorySecurity Category = "security"
	CategoryAdmin    Category = "admin"
	CategorySystem   Category = "system"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryVote, CategoryAuth, CategorySecurity, CategoryAdmin, CategorySystem}

// ParseCategory returns the category for s, or false if unknown.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Severity levels for audit events.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Action names a recorded action.
type Action string

const (
	// Voter events
	ActionVoteCast             Action = "vote_cast"
	ActionAuthSucceeded        Action = "auth_succeeded"
	ActionAuthFailed           Action = "auth_failed"
	ActionDuplicateVoteAttempt Action = "duplicate_vote_attempt"
	ActionSessionExpired       Action = "session_expired"
	ActionLogout               Action = "logout"

	// Administrator events
	ActionStudentAdded         Action = "student_added"
	ActionStudentUpdated       Action = "student_updated"
	ActionStudentRemoved       Action = "student_removed"
	ActionStudentsImported     Action = "students_imported"
	ActionElectionStateChanged Action = "election_state_changed"
	ActionExportPerformed      Action = "export_performed"

	// System events
	ActionStorageDegraded Action = "storage_degraded"
	ActionStorageRestored Action = "storage_restored"
)

var actionCategories = map[Action]Category{
	ActionVoteCast: CategoryVote,

	ActionAuthSucceeded:  CategoryAuth,
	ActionSessionExpired: CategoryAuth,
	ActionLogout:         CategoryAuth,

	ActionAuthFailed:           CategorySecurity,
	ActionDuplicateVoteAttempt: CategorySecurity,

	ActionStudentAdded:         CategoryAdmin,
	ActionStudentUpdated:       CategoryAdmin,
	ActionStudentRemoved:       CategoryAdmin,
	ActionStudentsImported:     CategoryAdmin,
	ActionElectionStateChanged: CategoryAdmin,
	ActionExportPerformed:      CategoryAdmin,

	ActionStorageDegraded: CategorySystem,
	ActionStorageRestored: CategorySystem,
}

// Category returns the category for this action. Unknown actions are system events.
func (a Action) Category() Category {
	if c, ok := actionCategories[a]; ok {
		return c
	}
	return CategorySystem
}

// DefaultSeverity is warning for security and degradation events, info otherwise.
func (a Action) DefaultSeverity() Severity {
	switch a {
	case ActionAuthFailed, ActionDuplicateVoteAttempt, ActionStorageDegraded:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// Event is one entry in the append-only audit trail. Vote events never carry
// the ballot selection.
type Event struct {
	ID        id.EventID
	Seq       int64 // insertion order, assigned by the store
	Category  Category
	Action    Action
	Timestamp time.Time
	Subject   string // voter ID, student ID or election ID
	ActorID   string // administrator when different from Subject
	Detail    string
	Severity  Severity
	RequestID string
	ClientIP  string
	UserAgent string
}

// Normalize fills derived fields that callers may leave empty.
func (e *Event) Normalize() {
	if e.ID.IsNil() {
		e.ID = id.NewEventID()
	}
	if e.Category == "" {
		e.Category = e.Action.Category()
	}
	if e.Severity == "" {
		e.Severity = e.Action.DefaultSeverity()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
}

// NewEvent builds an event enriched with request metadata from ctx.
func NewEvent(ctx context.Context, action Action, subject, detail string) Event {
	return Event{
		Action:    action,
		Category:  action.Category(),
		Severity:  action.DefaultSeverity(),
		Timestamp: requestcontext.Now(ctx),
		Subject:   subject,
		ActorID:   requestcontext.AdminActor(ctx),
		Detail:    detail,
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
	}
}

// Filter narrows a listing. Zero values mean "all" and "no limit".
type Filter struct {
	Category Category
	Subject  string
	Limit    int
}

// Matches reports whether e passes the category and subject filters.
func (f Filter) Matches(e Event) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Subject != "" && e.Subject != f.Subject {
		return false
	}
	return true
}

// Less orders events newest first: by timestamp, ties broken by insertion order.
func Less(a, b Event) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	return a.Seq > b.Seq
}

// Store persists and queries audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context, filter Filter) ([]Event, error)
	Counts(ctx context.Context) (map[Category]int, error)
}

// Sink receives every persisted event (e.g. a Kafka topic).
type Sink interface {
	Publish(ctx context.Context, event Event) error
}
