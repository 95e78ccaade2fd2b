// Package handler serves the public ballot and the administrator election
// controls.
package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ballotbox/internal/election/models"
	id "ballotbox/pkg/domain"
	"ballotbox/pkg/platform/httputil"
	request "ballotbox/pkg/platform/middleware/request"
	"ballotbox/pkg/requestcontext"
)

type Service interface {
	ElectionID() id.ElectionID
	Election(ctx context.Context) models.Election
	Open(ctx context.Context) (models.Status, error)
	Close(ctx context.Context) (models.Status, error)
	Results(ctx context.Context) (*models.Results, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

type Handler struct {
	logger   *slog.Logger
	election Service
}

func New(election Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, election: election}
}

// RegisterPublic mounts the ballot read by voters.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/election", h.handleBallot)
}

// RegisterAdmin mounts the election controls. The caller applies admin auth.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/election", h.handleBallot)
	r.Post("/election/open", h.handleOpen)
	r.Post("/election/close", h.handleClose)
	r.Get("/results", h.handleResults)
	r.Get("/results/export", h.handleExport)
}

func (h *Handler) handleBallot(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, models.NewBallotResponse(h.election.Election(r.Context())))
}

func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.election.Open)
}

func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.election.Close)
}

func (h *Handler) changeStatus(w http.ResponseWriter, r *http.Request, change func(context.Context) (models.Status, error)) {
	ctx := r.Context()
	status, err := change(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to change election status",
			"error", err,
			"request_id", request.GetRequestID(ctx),
			"actor", requestcontext.AdminActor(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.StatusResponse{
		ElectionID: h.election.ElectionID().String(),
		Status:     status,
	})
}

func (h *Handler) handleResults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	results, err := h.election.Results(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to compute results",
			"error", err,
			"request_id", request.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewResultsResponse(results))
}

// handleExport buffers the CSV so a failure can still produce a JSON error.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var buf bytes.Buffer
	if err := h.election.ExportCSV(ctx, &buf); err != nil {
		h.logger.ErrorContext(ctx, "failed to export results",
			"error", err,
			"request_id", request.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	filename := fmt.Sprintf("%s_results.csv", h.election.ElectionID())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
