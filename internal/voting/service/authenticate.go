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

// Authenticate signs a voter into an unauthenticated session and arms the
// inactivity timeout. A voter who already voted may sign in; the result
// carries PriorVote and any later CastVote is rejected.
func (s *Service) Authenticate(ctx context.Context, sessionID id.SessionID, rawVoterID, name string) (result models.Result, err error) {
	ctx, end := s.startOp(ctx, "authenticate", sessionID)
	defer func() { end(err) }()

	if strings.TrimSpace(rawVoterID) == "" {
		return models.Result{}, dErrors.New(dErrors.CodeInvalidTransition, "voter id is required to authenticate")
	}
	voterID, err := id.ParseVoterID(rawVoterID)
	if err != nil {
		return models.Result{}, err
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	snap, err := s.load(ctx, sessionID)
	if err != nil {
		return models.Result{}, err
	}
	if snap.State != models.StateUnauthenticated {
		return models.Result{}, dErrors.New(dErrors.CodeInvalidTransition, "session is already authenticated")
	}

	displayName := strings.TrimSpace(name)
	if s.directory != nil {
		rosterName, lookupErr := s.directory.Lookup(ctx, voterID)
		if lookupErr != nil {
			s.emit(ctx, audit.ActionAuthFailed, voterID, string(dErrors.CodeOf(lookupErr)))
			s.logger.InfoContext(ctx, "voter rejected by roster",
				"voter_id", voterID.String(),
				"error", lookupErr,
			)
			return models.Result{}, lookupErr
		}
		if displayName == "" {
			displayName = rosterName
		}
	}
	if displayName == "" {
		displayName = voterID.String()
	}

	prior, err := s.ledger.Get(ctx, s.election.ElectionID(), voterID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return models.Result{}, dErrors.Wrap(err, dErrors.CodeStorageUnavailable, "ballot ledger unavailable")
	}

	next := models.Snapshot{
		State: models.StateAuthenticated,
		Identity: &models.VoterIdentity{
			VoterID:         voterID,
			DisplayName:     displayName,
			AuthenticatedAt: requestcontext.Now(ctx),
		},
	}
	if err := s.sessions.Save(ctx, sessionID, next); err != nil {
		return models.Result{}, dErrors.Wrap(err, dErrors.CodeStorageUnavailable, "failed to save session")
	}

	s.expired.forget(sessionID)
	s.arm(sessionID)
	s.emit(ctx, audit.ActionAuthSucceeded, voterID, "")
	s.logger.InfoContext(ctx, "voter authenticated",
		"session_id", sessionID.String(),
		"voter_id", voterID.String(),
		"prior_vote", prior != nil,
	)

	result = models.ResultFrom(next)
	if prior != nil {
		result.PriorVote = true
		castAt := prior.CastAt
		result.PriorVoteAt = &castAt
	}
	result.StorageDegraded = s.degraded(sessionID)
	return result, nil
}
