// Package handler exposes the voter session state machine over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ballotbox/internal/voting/models"
	"ballotbox/internal/voting/timeout"
	id "ballotbox/pkg/domain"
	dErrors "ballotbox/pkg/domain-errors"
	"ballotbox/pkg/platform/httputil"
	request "ballotbox/pkg/platform/middleware/request"
	"ballotbox/pkg/requestcontext"
)

// Service is the voter session state machine.
type Service interface {
	Authenticate(ctx context.Context, sessionID id.SessionID, rawVoterID, name string) (models.Result, error)
	CastVote(ctx context.Context, sessionID id.SessionID, selection string) (models.Result, error)
	Confirm(ctx context.Context, sessionID id.SessionID) (*models.Receipt, error)
	Logout(ctx context.Context, sessionID id.SessionID) (models.Result, error)
	Expire(ctx context.Context, sessionID id.SessionID) (models.Result, error)
	Current(ctx context.Context, sessionID id.SessionID) (models.Result, error)
	Extend(ctx context.Context, sessionID id.SessionID) (timeout.Status, error)
	TimeoutStatus(ctx context.Context, sessionID id.SessionID) timeout.Status
}

// Handler serves the /voter routes. Session middleware must run first.
type Handler struct {
	logger       *slog.Logger
	voting       Service
	authThrottle func(http.Handler) http.Handler
}

// New creates a voter Handler. authThrottle wraps the sign-in route and may
// be nil.
func New(voting Service, logger *slog.Logger, authThrottle func(http.Handler) http.Handler) *Handler {
	return &Handler{
		logger:       logger,
		voting:       voting,
		authThrottle: authThrottle,
	}
}

// Register mounts the voter routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/voter", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if h.authThrottle != nil {
				r.Use(h.authThrottle)
			}
			r.Post("/session", h.handleAuthenticate)
		})
		r.Get("/session", h.handleCurrent)
		r.Post("/session/extend", h.handleExtend)
		r.Get("/session/timeout", h.handleTimeoutStatus)
		r.Post("/session/expire", h.handleExpire)
		r.Post("/vote", h.handleCastVote)
		r.Get("/receipt", h.handleReceipt)
		r.Post("/logout", h.handleLogout)
	})
}

func (h *Handler) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.AuthenticateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.voting.Authenticate(ctx, sessionID, req.VoterID, req.Name)
	if err != nil {
		h.writeServiceError(ctx, w, "authenticate", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewSessionResponse(result))
}

func (h *Handler) handleCastVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.CastVoteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.voting.CastVote(ctx, sessionID, req.CandidateID)
	if err != nil {
		h.writeServiceError(ctx, w, "cast vote", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, models.NewSessionResponse(result))
}

func (h *Handler) handleReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	receipt, err := h.voting.Confirm(ctx, sessionID)
	if err != nil {
		h.writeServiceError(ctx, w, "confirm", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewReceiptResponse(receipt))
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	result, err := h.voting.Logout(ctx, sessionID)
	if err != nil {
		h.writeServiceError(ctx, w, "logout", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewSessionResponse(result))
}

func (h *Handler) handleExpire(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	result, err := h.voting.Expire(ctx, sessionID)
	if err != nil {
		h.writeServiceError(ctx, w, "expire", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewSessionResponse(result))
}

func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	result, err := h.voting.Current(ctx, sessionID)
	if err != nil {
		h.writeServiceError(ctx, w, "current", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewSessionResponse(result))
}

func (h *Handler) handleExtend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	status, err := h.voting.Extend(ctx, sessionID)
	if err != nil {
		h.writeServiceError(ctx, w, "extend", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewTimeoutResponse(status.Active, status.Warned, status.Remaining))
}

func (h *Handler) handleTimeoutStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	status := h.voting.TimeoutStatus(ctx, sessionID)
	httputil.WriteJSON(w, http.StatusOK, models.NewTimeoutResponse(status.Active, status.Warned, status.Remaining))
}

// sessionID reads the session set by the voter session middleware.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (id.SessionID, bool) {
	ctx := r.Context()
	sessionID := requestcontext.SessionID(ctx)
	if sessionID.IsNil() {
		// Only reachable when the session middleware is not mounted.
		h.logger.ErrorContext(ctx, "session ID missing from context despite session middleware",
			"request_id", request.GetRequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "session context error"))
		return id.SessionID{}, false
	}
	return sessionID, true
}

// writeServiceError logs expected rejections at warn and failures at error.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	code := dErrors.CodeOf(err)
	attrs := []any{
		"operation", op,
		"code", string(code),
		"error", err,
		"request_id", request.GetRequestID(ctx),
		"session_id", requestcontext.SessionID(ctx).String(),
	}
	if code == dErrors.CodeInternal || code == dErrors.CodeStorageUnavailable {
		h.logger.ErrorContext(ctx, "voter request failed", attrs...)
	} else {
		h.logger.WarnContext(ctx, "voter request rejected", attrs...)
	}
	httputil.WriteError(w, err)
}
