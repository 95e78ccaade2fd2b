package service

import (
	"context"

	"ballotbox/internal/voting/models"
	"ballotbox/internal/voting/timeout"
	id "ballotbox/pkg/domain"
	dErrors "ballotbox/pkg/domain-errors"
	audit "ballotbox/pkg/platform/audit"
	"ballotbox/pkg/requestcontext"
)

// Confirm returns the receipt for a session that has voted.
func (s *Service) Confirm(ctx context.Context, sessionID id.SessionID) (receipt *models.Receipt, err error) {
	ctx, end := s.startOp(ctx, "confirm", sessionID)
	defer func() { end(err) }()

	unlock := s.locks.lock(sessionID)
	defer unlock()

	snap, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if snap.State != models.StateVoted {
		if snap.State == models.StateUnauthenticated && s.expired.has(sessionID, requestcontext.Now(ctx)) {
			return nil, dErrors.New(dErrors.CodeTimeoutExpired, "session timed out")
		}
		return nil, dErrors.New(dErrors.CodeInvalidTransition, "no ballot to confirm")
	}

	name, _ := s.election.CandidateName(ctx, snap.Vote.SelectionID)
	return &models.Receipt{
		ElectionID:       s.election.ElectionID(),
		ConfirmationCode: snap.Vote.ConfirmationCode,
		VoterID:          snap.Identity.VoterID,
		DisplayName:      snap.Identity.DisplayName,
		SelectionID:      snap.Vote.SelectionID,
		SelectionName:    name,
		CastAt:           snap.Vote.CastAt,
	}, nil
}

// Logout clears the session from any state and stops its countdown.
func (s *Service) Logout(ctx context.Context, sessionID id.SessionID) (result models.Result, err error) {
	ctx, end := s.startOp(ctx, "logout", sessionID)
	defer func() { end(err) }()

	unlock := s.locks.lock(sessionID)
	defer unlock()

	// The voter must be able to leave even when the snapshot cannot be read.
	snap, loadErr := s.sessions.Load(ctx, sessionID)
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return models.Result{}, dErrors.Wrap(err, dErrors.CodeStorageUnavailable, "failed to clear session")
	}
	s.disarm(sessionID)
	s.expired.forget(sessionID)

	if loadErr == nil && snap.Identity != nil {
		s.emit(ctx, audit.ActionLogout, snap.Identity.VoterID, "")
		s.logger.InfoContext(ctx, "voter logged out",
			"session_id", sessionID.String(),
			"voter_id", snap.Identity.VoterID.String(),
		)
	}
	return models.Result{State: models.StateUnauthenticated, StorageDegraded: s.degraded(sessionID)}, nil
}

// Expire clears an authenticated or voted session after inactivity. The
// ledger is untouched, so a voter who voted stays recorded.
func (s *Service) Expire(ctx context.Context, sessionID id.SessionID) (result models.Result, err error) {
	ctx, end := s.startOp(ctx, "expire", sessionID)
	defer func() { end(err) }()

	unlock := s.locks.lock(sessionID)
	defer unlock()
	return s.expireLocked(ctx, sessionID)
}

// HandleTimeout is the timer callback. It only acts when token is still the
// session's current countdown, so an expiry that raced a logout or a new
// sign-in is dropped.
func (s *Service) HandleTimeout(sessionID id.SessionID, token timeout.Token) {
	ctx := requestcontext.WithSessionID(context.Background(), sessionID)
	ctx = requestcontext.WithTime(ctx, s.clock.Now())
	ctx, end := s.startOp(ctx, "timeout", sessionID)

	unlock := s.locks.lock(sessionID)
	defer unlock()

	if s.timer == nil || !s.timer.Release(sessionID, token) {
		end(nil)
		return
	}
	_, err := s.expireLocked(ctx, sessionID)
	if err != nil && !dErrors.HasCode(err, dErrors.CodeInvalidTransition) {
		s.logger.ErrorContext(ctx, "failed to expire session",
			"session_id", sessionID.String(),
			"error", err,
		)
		end(err)
		return
	}
	end(nil)
}

func (s *Service) expireLocked(ctx context.Context, sessionID id.SessionID) (models.Result, error) {
	snap, err := s.load(ctx, sessionID)
	if err != nil {
		return models.Result{}, err
	}
	if snap.State == models.StateUnauthenticated {
		return models.Result{}, dErrors.New(dErrors.CodeInvalidTransition, "session is not active")
	}
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return models.Result{}, dErrors.Wrap(err, dErrors.CodeStorageUnavailable, "failed to clear session")
	}
	s.disarm(sessionID)
	s.expired.mark(sessionID, requestcontext.Now(ctx))
	s.metrics.IncrementSessionsExpired()
	s.emit(ctx, audit.ActionSessionExpired, snap.Identity.VoterID, string(snap.State))
	s.logger.InfoContext(ctx, "session expired",
		"session_id", sessionID.String(),
		"voter_id", snap.Identity.VoterID.String(),
		"state", string(snap.State),
	)
	return models.Result{State: models.StateUnauthenticated, Expired: true, StorageDegraded: s.degraded(sessionID)}, nil
}

// Current reports the session without changing it.
func (s *Service) Current(ctx context.Context, sessionID id.SessionID) (result models.Result, err error) {
	ctx, end := s.startOp(ctx, "current", sessionID)
	defer func() { end(err) }()

	unlock := s.locks.lock(sessionID)
	defer unlock()

	snap, err := s.load(ctx, sessionID)
	if err != nil {
		return models.Result{}, err
	}
	result = models.ResultFrom(snap)
	switch snap.State {
	case models.StateUnauthenticated:
		result.Expired = s.expired.has(sessionID, requestcontext.Now(ctx))
	case models.StateAuthenticated:
		prior, err := s.ledger.Has(ctx, s.election.ElectionID(), snap.Identity.VoterID)
		if err != nil {
			return models.Result{}, dErrors.Wrap(err, dErrors.CodeStorageUnavailable, "ballot ledger unavailable")
		}
		result.PriorVote = prior
	}
	result.StorageDegraded = s.degraded(sessionID)
	return result, nil
}

// Extend records voter activity and restarts the countdown at its full
// duration. A session whose countdown was lost, for example after a restart,
// is re-armed.
func (s *Service) Extend(ctx context.Context, sessionID id.SessionID) (status timeout.Status, err error) {
	ctx, end := s.startOp(ctx, "extend", sessionID)
	defer func() { end(err) }()

	unlock := s.locks.lock(sessionID)
	defer unlock()

	snap, err := s.load(ctx, sessionID)
	if err != nil {
		return timeout.Status{}, err
	}
	if snap.State == models.StateUnauthenticated {
		if s.expired.has(sessionID, requestcontext.Now(ctx)) {
			return timeout.Status{}, dErrors.New(dErrors.CodeTimeoutExpired, "session timed out")
		}
		return timeout.Status{}, dErrors.New(dErrors.CodeInvalidTransition, "no active session to extend")
	}
	if s.timer == nil {
		return timeout.Status{}, nil
	}
	if err := s.timer.Extend(sessionID); err != nil {
		if dErrors.HasCode(err, dErrors.CodeTimeoutExpired) {
			return timeout.Status{}, err
		}
		s.arm(sessionID)
	}
	return s.timer.Status(sessionID), nil
}

// TimeoutStatus reports the countdown for the session.
func (s *Service) TimeoutStatus(_ context.Context, sessionID id.SessionID) timeout.Status {
	if s.timer == nil {
		return timeout.Status{}
	}
	return s.timer.Status(sessionID)
}
