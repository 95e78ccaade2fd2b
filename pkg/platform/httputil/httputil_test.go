package httputil

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dErrors "ballotbox/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "internal_error" {
			t.Fatalf("expected error code internal_error, got %q", body["error"])
		}
		if _, ok := body["error_description"]; ok {
			t.Fatalf("expected error_description to be omitted for internal errors")
		}
	})

	t.Run("already voted maps to conflict with description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeAlreadyVoted, "a ballot has already been recorded"))

		if w.Code != http.StatusConflict {
			t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
		}
		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "already_voted" {
			t.Fatalf("expected error code already_voted, got %q", body["error"])
		}
		if body["error_description"] != "a ballot has already been recorded" {
			t.Fatalf("unexpected description %q", body["error_description"])
		}
	})

	t.Run("uncoded errors are internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, io.ErrUnexpectedEOF)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
	})
}

func TestStatusFor(t *testing.T) {
	cases := map[dErrors.Code]int{
		dErrors.CodeMissingSelection:   http.StatusBadRequest,
		dErrors.CodeInvalidTransition:  http.StatusConflict,
		dErrors.CodeTimeoutExpired:     http.StatusUnauthorized,
		dErrors.CodeElectionClosed:     http.StatusForbidden,
		dErrors.CodeStorageUnavailable: http.StatusServiceUnavailable,
		dErrors.CodeTooManyRequests:    http.StatusTooManyRequests,
		dErrors.CodeNotFound:           http.StatusNotFound,
	}
	for code, want := range cases {
		if got := StatusFor(code); got != want {
			t.Errorf("StatusFor(%s) = %d, want %d", code, got, want)
		}
	}
}

type castRequest struct {
	Selection string `json:"selection"`
}

func (r *castRequest) Validate() error {
	r.Selection = strings.TrimSpace(r.Selection)
	if r.Selection == "" {
		return dErrors.New(dErrors.CodeMissingSelection, "selection is required")
	}
	return nil
}

func TestDecodeAndPrepare(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("valid body is decoded and normalized", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"selection":" candidate-1 "}`))
		w := httptest.NewRecorder()
		req, ok := DecodeAndPrepare[castRequest](w, r, logger, context.Background(), "req-1")
		if !ok {
			t.Fatalf("expected decode to succeed, got status %d", w.Code)
		}
		if req.Selection != "candidate-1" {
			t.Fatalf("expected trimmed selection, got %q", req.Selection)
		}
	})

	t.Run("validation failure writes coded error", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"selection":""}`))
		w := httptest.NewRecorder()
		_, ok := DecodeAndPrepare[castRequest](w, r, logger, context.Background(), "req-2")
		if ok {
			t.Fatal("expected validation failure")
		}
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"selection":"a","extra":1}`))
		w := httptest.NewRecorder()
		_, ok := DecodeAndPrepare[castRequest](w, r, logger, context.Background(), "req-3")
		if ok {
			t.Fatal("expected decode failure")
		}
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})
}
