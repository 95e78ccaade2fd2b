package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "ballotbox/pkg/domain-errors"
	audit "ballotbox/pkg/platform/audit"
	"ballotbox/pkg/platform/httputil"
	request "ballotbox/pkg/platform/middleware/request"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 1000
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the dashboard and audit trail. The caller applies admin auth.
func (h *Handler) Register(r chi.Router) {
	r.Get("/dashboard", h.handleDashboard)
	r.Get("/audit", h.handleAuditTrail)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats, err := h.service.Dashboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build dashboard",
			"error", err,
			"request_id", request.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newDashboardResponse(stats))
}

// handleAuditTrail accepts ?category=, ?subject= and ?limit= (default 100).
func (h *Handler) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter := audit.Filter{Subject: q.Get("subject"), Limit: defaultAuditLimit}
	if raw := q.Get("category"); raw != "" && raw != "all" {
		category, ok := audit.ParseCategory(raw)
		if !ok {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "unknown audit category"))
			return
		}
		filter.Category = category
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxAuditLimit {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "limit must be between 1 and 1000"))
			return
		}
		filter.Limit = n
	}

	trail, err := h.service.AuditTrail(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read audit trail",
			"error", err,
			"request_id", request.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newAuditTrailResponse(trail))
}
