// Package handler serves the administrator student roster endpoints.
package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"ballotbox/internal/roster/models"
	id "ballotbox/pkg/domain"
	dErrors "ballotbox/pkg/domain-errors"
	"ballotbox/pkg/platform/httputil"
	request "ballotbox/pkg/platform/middleware/request"
	"ballotbox/pkg/requestcontext"
)

// maxUploadBytes bounds a roster CSV upload.
const maxUploadBytes = 5 << 20

type Service interface {
	List(ctx context.Context, filter models.ListFilter) (*models.StudentPage, error)
	Add(ctx context.Context, student models.Student) (*models.StudentView, error)
	Get(ctx context.Context, voterID id.VoterID) (*models.StudentView, error)
	Update(ctx context.Context, voterID id.VoterID, changes *models.UpdateStudentRequest) (*models.StudentView, error)
	Remove(ctx context.Context, voterID id.VoterID) error
	BulkRemove(ctx context.Context, rawIDs []string) (int, []string, error)
	ImportCSV(ctx context.Context, r io.Reader) (*models.ImportReport, error)
	ExportCSV(ctx context.Context, w io.Writer, ids []string) error
	TurnoutBreakdown(ctx context.Context, filter models.TurnoutFilter) (*models.TurnoutBreakdown, error)
}

type Handler struct {
	logger *slog.Logger
	roster Service
}

func New(roster Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, roster: roster}
}

// Register mounts the roster routes. The caller applies admin auth.
func (h *Handler) Register(r chi.Router) {
	r.Route("/students", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleAdd)
		r.Post("/import", h.handleImport)
		r.Get("/export", h.handleExport)
		r.Post("/bulk-delete", h.handleBulkRemove)
		r.Get("/turnout", h.handleTurnout)
		r.Get("/{studentID}", h.handleGet)
		r.Patch("/{studentID}", h.handleUpdate)
		r.Delete("/{studentID}", h.handleRemove)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, err := parseListFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	page, err := h.roster.List(ctx, filter)
	if err != nil {
		h.writeServiceError(ctx, w, "list students", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewStudentListResponse(page))
}

// handleTurnout serves participation by department or year:
// ?by=department|year&department=...&year=...
func (h *Handler) handleTurnout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	group, err := models.ParseTurnoutGroup(q.Get("by"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	breakdown, err := h.roster.TurnoutBreakdown(ctx, models.TurnoutFilter{
		GroupBy:    group,
		Department: q.Get("department"),
		Year:       q.Get("year"),
	})
	if err != nil {
		h.writeServiceError(ctx, w, "turnout breakdown", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewTurnoutResponse(breakdown))
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateStudentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	view, err := h.roster.Add(ctx, req.Student())
	if err != nil {
		h.writeServiceError(ctx, w, "add student", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, models.NewStudentResponse(*view))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	voterID, ok := h.studentID(w, r)
	if !ok {
		return
	}
	view, err := h.roster.Get(ctx, voterID)
	if err != nil {
		h.writeServiceError(ctx, w, "get student", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewStudentResponse(*view))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	voterID, ok := h.studentID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.UpdateStudentRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	view, err := h.roster.Update(ctx, voterID, req)
	if err != nil {
		h.writeServiceError(ctx, w, "update student", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewStudentResponse(*view))
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	voterID, ok := h.studentID(w, r)
	if !ok {
		return
	}
	if err := h.roster.Remove(ctx, voterID); err != nil {
		h.writeServiceError(ctx, w, "remove student", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleBulkRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.BulkRemoveRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	removed, notFound, err := h.roster.BulkRemove(ctx, req.StudentIDs)
	if err != nil {
		h.writeServiceError(ctx, w, "bulk remove students", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.BulkRemoveResponse{Removed: removed, NotFound: notFound})
}

// handleImport accepts either a multipart form with a "file" part or a raw
// text/csv body.
func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	body, err := uploadReader(r)
	if err != nil {
		h.logger.WarnContext(ctx, "rejected roster upload",
			"error", err,
			"request_id", request.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	defer body.Close()

	report, err := h.roster.ImportCSV(ctx, body)
	if err != nil {
		h.writeServiceError(ctx, w, "import students", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewImportResponse(report))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var ids []string
	if raw := r.URL.Query().Get("ids"); raw != "" {
		ids = strings.Split(raw, ",")
	}

	var buf bytes.Buffer
	if err := h.roster.ExportCSV(ctx, &buf, ids); err != nil {
		h.writeServiceError(ctx, w, "export students", err)
		return
	}
	filename := fmt.Sprintf("students_%s.csv", requestcontext.Now(ctx).Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) studentID(w http.ResponseWriter, r *http.Request) (id.VoterID, bool) {
	voterID, err := id.ParseVoterID(chi.URLParam(r, "studentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return voterID, true
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	attrs := []any{
		"op", op,
		"error", err,
		"request_id", request.GetRequestID(ctx),
		"actor", requestcontext.AdminActor(ctx),
	}
	switch dErrors.CodeOf(err) {
	case dErrors.CodeInternal, dErrors.CodeStorageUnavailable:
		h.logger.ErrorContext(ctx, "roster operation failed", attrs...)
	default:
		h.logger.WarnContext(ctx, "roster operation rejected", attrs...)
	}
	httputil.WriteError(w, err)
}

func parseListFilter(r *http.Request) (models.ListFilter, error) {
	q := r.URL.Query()
	var (
		filter models.ListFilter
		err    error
	)
	filter.Search = q.Get("search")
	if filter.Status, err = models.ParseVotingStatus(q.Get("status")); err != nil {
		return filter, err
	}
	if filter.Registered, err = models.ParseRegistrationWindow(q.Get("registered")); err != nil {
		return filter, err
	}
	if filter.Sort, err = models.ParseSortField(q.Get("sort")); err != nil {
		return filter, err
	}
	switch strings.ToLower(q.Get("order")) {
	case "", "asc":
	case "desc":
		filter.Descending = true
	default:
		return filter, dErrors.New(dErrors.CodeInvalidInput, "order must be asc or desc")
	}
	if filter.Page, err = positiveInt(q.Get("page"), "page"); err != nil {
		return filter, err
	}
	if filter.PageSize, err = positiveInt(q.Get("page_size"), "page_size"); err != nil {
		return filter, err
	}
	return filter, nil
}

func positiveInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, name+" must be a positive integer")
	}
	return n, nil
}

func uploadReader(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Content-Type is required")
	}
	switch mediaType {
	case "multipart/form-data":
		file, _, err := r.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, dErrors.New(dErrors.CodeBadRequest, "upload is too large")
			}
			return nil, dErrors.New(dErrors.CodeBadRequest, "multipart field \"file\" is required")
		}
		return file, nil
	case "text/csv", "text/plain", "application/octet-stream":
		return r.Body, nil
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, "upload must be text/csv or multipart/form-data")
	}
}
