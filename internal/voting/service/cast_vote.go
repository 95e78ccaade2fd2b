package service

import (
	"context"
	"errors"
	"strings"

	"ballotbox/internal/voting/models"
	id "ballotbox/pkg/domain"
	dErrors "ballotbox/pkg/domain-errors"
	audit "ballotbox/pkg/platform/audit"
	"ballotbox/pkg/platform/sentinel"
	"ballotbox/pkg/requestcontext"
)

// CastVote records the voter's ballot. Checks run in a fixed order: session
// state, selection presence, election status, candidate validity, then the
// ledger. Every rejection leaves the session unchanged.
func (s *Service) CastVote(ctx context.Context, sessionID id.SessionID, selection string) (result models.Result, err error) {
	ctx, end := s.startOp(ctx, "cast_vote", sessionID)
	defer func() { end(err) }()

	unlock := s.locks.lock(sessionID)
	defer unlock()

	snap, err := s.load(ctx, sessionID)
	if err != nil {
		return models.Result{}, err
	}
	now := requestcontext.Now(ctx)

	switch snap.State {
	case models.StateUnauthenticated:
		if s.expired.has(sessionID, now) {
			return models.Result{}, dErrors.New(dErrors.CodeTimeoutExpired, "session timed out, sign in again")
		}
		return models.Result{}, dErrors.New(dErrors.CodeInvalidTransition, "sign in before voting")
	case models.StateVoted:
		s.rejectDuplicate(ctx, snap.Identity.VoterID, "session already voted")
		return models.Result{}, dErrors.New(dErrors.CodeAlreadyVoted, "a ballot was already cast for this voter")
	}

	selection = strings.TrimSpace(selection)
	if selection == "" {
		return models.Result{}, dErrors.New(dErrors.CodeMissingSelection, "select a candidate before submitting")
	}
	if !s.election.IsOpen(ctx) {
		return models.Result{}, dErrors.New(dErrors.CodeElectionClosed, "voting is closed")
	}
	candidateID, err := id.ParseCandidateID(selection)
	if err != nil {
		return models.Result{}, dErrors.New(dErrors.CodeInvalidInput, "unknown candidate")
	}
	if _, ok := s.election.CandidateName(ctx, candidateID); !ok {
		return models.Result{}, dErrors.New(dErrors.CodeInvalidInput, "unknown candidate")
	}

	voterID := snap.Identity.VoterID
	code, err := s.newCode(now)
	if err != nil {
		return models.Result{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue confirmation code")
	}
	entry := models.LedgerEntry{
		ElectionID:       s.election.ElectionID(),
		VoterID:          voterID,
		ConfirmationCode: code,
		CastAt:           now,
	}
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.ledger.Record(txCtx, entry); err != nil {
			return err
		}
		return s.tally.Increment(txCtx, entry.ElectionID, candidateID)
	})
	if errors.Is(err, sentinel.ErrConflict) {
		s.rejectDuplicate(ctx, voterID, "ledger entry exists")
		return models.Result{}, dErrors.New(dErrors.CodeAlreadyVoted, "a ballot was already cast for this voter")
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to record ballot",
			"session_id", sessionID.String(),
			"voter_id", voterID.String(),
			"error", err,
		)
		return models.Result{}, dErrors.Wrap(err, dErrors.CodeStorageUnavailable, "ballot could not be recorded, try again")
	}

	next := models.Snapshot{
		State:    models.StateVoted,
		Identity: snap.Identity,
		Vote: &models.VoteRecord{
			VoterID:          voterID,
			SelectionID:      candidateID,
			CastAt:           now,
			ConfirmationCode: code,
		},
	}
	storageDegraded := false
	if err := s.sessions.Save(ctx, sessionID, next); err != nil {
		// The ledger entry is committed, so the ballot stands even if the
		// receipt cannot be kept.
		storageDegraded = true
		s.logger.ErrorContext(ctx, "ballot recorded but session could not be saved",
			"session_id", sessionID.String(),
			"voter_id", voterID.String(),
			"error", err,
		)
	}

	s.arm(sessionID)
	s.metrics.IncrementVotesCast()
	s.emit(ctx, audit.ActionVoteCast, voterID, "confirmation "+code.String())
	s.logger.InfoContext(ctx, "ballot recorded",
		"session_id", sessionID.String(),
		"voter_id", voterID.String(),
	)

	result = models.ResultFrom(next)
	result.StorageDegraded = storageDegraded || s.degraded(sessionID)
	return result, nil
}

func (s *Service) rejectDuplicate(ctx context.Context, voterID id.VoterID, reason string) {
	s.metrics.IncrementDuplicateAttempts()
	s.emit(ctx, audit.ActionDuplicateVoteAttempt, voterID, reason)
	s.logger.WarnContext(ctx, "duplicate vote attempt",
		"voter_id", voterID.String(),
		"reason", reason,
	)
}
