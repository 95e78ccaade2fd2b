// Package service implements the voter session state machine.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ballotbox/internal/voting/metrics"
	"ballotbox/internal/voting/models"
	"ballotbox/internal/voting/timeout"
	id "ballotbox/pkg/domain"
	dErrors "ballotbox/pkg/domain-errors"
	audit "ballotbox/pkg/platform/audit"
	"ballotbox/pkg/platform/clock"
	"ballotbox/pkg/platform/tx"
)

// SessionStore persists one snapshot per session.
type SessionStore interface {
	Load(ctx context.Context, sessionID id.SessionID) (models.Snapshot, error)
	Save(ctx context.Context, sessionID id.SessionID, snap models.Snapshot) error
	Clear(ctx context.Context, sessionID id.SessionID) error
}

// Ledger records which voters took part in an election.
type Ledger interface {
	Record(ctx context.Context, entry models.LedgerEntry) error
	Has(ctx context.Context, electionID id.ElectionID, voterID id.VoterID) (bool, error)
	Get(ctx context.Context, electionID id.ElectionID, voterID id.VoterID) (*models.LedgerEntry, error)
}

// Tally counts ballots per candidate. It holds no voter identities.
type Tally interface {
	Increment(ctx context.Context, electionID id.ElectionID, candidateID id.CandidateID) error
}

// ElectionGate exposes the running election to the state machine.
type ElectionGate interface {
	ElectionID() id.ElectionID
	IsOpen(ctx context.Context) bool
	CandidateName(ctx context.Context, candidateID id.CandidateID) (string, bool)
}

// VoterDirectory resolves a voter against the roster. Unknown voters fail with
// CodeUnauthorized and inactive ones with CodeForbidden.
type VoterDirectory interface {
	Lookup(ctx context.Context, voterID id.VoterID) (displayName string, err error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// SessionTimer tracks inactivity countdowns per session.
type SessionTimer interface {
	Arm(sessionID id.SessionID) timeout.Token
	Extend(sessionID id.SessionID) error
	Disarm(sessionID id.SessionID)
	Release(sessionID id.SessionID, token timeout.Token) bool
	Status(sessionID id.SessionID) timeout.Status
	Len() int
}

// degradedReporter is implemented by stores that can fall back to memory.
type degradedReporter interface {
	Degraded(sessionID id.SessionID) bool
}

// CodeGenerator issues confirmation codes.
type CodeGenerator func(now time.Time) (id.ConfirmationCode, error)

var tracer = otel.Tracer("ballotbox/voting")

// Service owns every voter session transition. Operations on one session are
// serialized; different sessions proceed in parallel.
type Service struct {
	sessions  SessionStore
	ledger    Ledger
	tally     Tally
	election  ElectionGate
	directory VoterDirectory
	auditor   AuditPublisher
	timer     SessionTimer
	tx        tx.Runner
	metrics   *metrics.Metrics
	logger    *slog.Logger
	newCode   CodeGenerator
	clock     clock.Clock

	locks   *sessionLocks
	expired *expiryMarks
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithVoterDirectory restricts authentication to voters the directory accepts.
func WithVoterDirectory(d VoterDirectory) Option {
	return func(s *Service) {
		s.directory = d
	}
}

// WithSessionTimer enables inactivity timeouts.
func WithSessionTimer(t SessionTimer) Option {
	return func(s *Service) {
		s.timer = t
	}
}

// WithTxRunner makes the ledger entry and tally increment one unit of work.
func WithTxRunner(r tx.Runner) Option {
	return func(s *Service) {
		s.tx = r
	}
}

// WithClock sets the time source for timer-driven operations, which run
// outside any request.
func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

func WithCodeGenerator(g CodeGenerator) Option {
	return func(s *Service) {
		s.newCode = g
	}
}

func New(sessions SessionStore, ledger Ledger, tally Tally, election ElectionGate, opts ...Option) (*Service, error) {
	if sessions == nil {
		return nil, errors.New("session store is required")
	}
	if ledger == nil {
		return nil, errors.New("ledger is required")
	}
	if tally == nil {
		return nil, errors.New("tally is required")
	}
	if election == nil {
		return nil, errors.New("election is required")
	}
	s := &Service{
		sessions: sessions,
		ledger:   ledger,
		tally:    tally,
		election: election,
		tx:       tx.NoopRunner{},
		logger:   slog.Default(),
		newCode:  NewConfirmationCode,
		clock:    clock.Real(),
		locks:    newSessionLocks(),
		expired:  newExpiryMarks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.timer != nil {
		s.expired.ttl = 2 * sessionTimerDuration(s.timer)
	}
	return s, nil
}

func sessionTimerDuration(t SessionTimer) time.Duration {
	if d, ok := t.(interface{ Duration() time.Duration }); ok {
		return d.Duration()
	}
	return timeout.DefaultDuration
}

// startOp opens a span and returns the function that closes it with the
// operation's outcome.
func (s *Service) startOp(ctx context.Context, op string, sessionID id.SessionID) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "voting."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("session.id", sessionID.String())),
	)
	return ctx, func(err error) {
		outcome := "ok"
		if err != nil {
			outcome = string(dErrors.CodeOf(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
		}
		s.metrics.ObserveOperation(op, outcome, time.Since(start))
		span.End()
	}
}

func (s *Service) degraded(sessionID id.SessionID) bool {
	if d, ok := s.sessions.(degradedReporter); ok {
		return d.Degraded(sessionID)
	}
	return false
}

func (s *Service) load(ctx context.Context, sessionID id.SessionID) (models.Snapshot, error) {
	snap, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return models.Snapshot{}, dErrors.Wrap(err, dErrors.CodeStorageUnavailable, "session storage unavailable")
	}
	return snap, nil
}

// emit records an audit event. Audit failures are logged and never fail the
// voter's operation.
func (s *Service) emit(ctx context.Context, action audit.Action, subject id.VoterID, detail string) {
	if s.auditor == nil {
		return
	}
	event := audit.NewEvent(ctx, action, subject.String(), detail)
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", action,
			"voter_id", subject.String(),
			"error", err,
		)
	}
}

func (s *Service) arm(sessionID id.SessionID) {
	if s.timer == nil {
		return
	}
	s.timer.Arm(sessionID)
	s.metrics.SetActiveSessions(s.timer.Len())
}

func (s *Service) disarm(sessionID id.SessionID) {
	if s.timer == nil {
		return
	}
	s.timer.Disarm(sessionID)
	s.metrics.SetActiveSessions(s.timer.Len())
}

// sessionLocks hands out one mutex per session and drops it when unused.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[id.SessionID]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[id.SessionID]*sessionLock)}
}

func (l *sessionLocks) lock(sessionID id.SessionID) func() {
	l.mu.Lock()
	entry, ok := l.locks[sessionID]
	if !ok {
		entry = &sessionLock{}
		l.locks[sessionID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, sessionID)
		}
		l.mu.Unlock()
	}
}

func (l *sessionLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// expiryMarks remembers recently expired sessions so later requests can
// report timeout_expired instead of a bare invalid transition.
type expiryMarks struct {
	mu  sync.Mutex
	ttl time.Duration
	at  map[id.SessionID]time.Time
}

func newExpiryMarks() *expiryMarks {
	return &expiryMarks{ttl: 2 * timeout.DefaultDuration, at: make(map[id.SessionID]time.Time)}
}

func (m *expiryMarks) mark(sessionID id.SessionID, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for sid, at := range m.at {
		if now.Sub(at) > m.ttl {
			delete(m.at, sid)
		}
	}
	m.at[sessionID] = now
}

func (m *expiryMarks) has(sessionID id.SessionID, now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.at[sessionID]
	return ok && now.Sub(at) <= m.ttl
}

func (m *expiryMarks) forget(sessionID id.SessionID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.at, sessionID)
}
