package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "doctorat/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		var body map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "internal_error", body["error"])
		_, ok := body["error_description"]
		assert.False(t, ok, "expected error_description to be omitted for internal errors")
	})

	t.Run("uncoded error is internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, io.ErrUnexpectedEOF)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("conflict includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeConflict, "inscription is not pending admin"))

		require.Equal(t, http.StatusConflict, w.Code)
		var body map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "conflict", body["error"])
		assert.Equal(t, "inscription is not pending admin", body["error_description"])
	})
}

func TestStatusFor(t *testing.T) {
	cases := map[dErrors.Code]int{
		dErrors.CodeNotFound:           http.StatusNotFound,
		dErrors.CodeValidation:         http.StatusUnprocessableEntity,
		dErrors.CodeForbidden:          http.StatusForbidden,
		dErrors.CodeDependencyDegraded: http.StatusServiceUnavailable,
		dErrors.CodeInvalidInput:       http.StatusBadRequest,
	}
	for code, want := range cases {
		assert.Equal(t, want, StatusFor(code), string(code))
	}
}

type commentRequest struct {
	Comment string `json:"comment"`
}

func (r *commentRequest) Validate() error {
	r.Comment = strings.TrimSpace(r.Comment)
	if r.Comment == "nope" {
		return dErrors.New(dErrors.CodeValidation, "comment rejected")
	}
	return nil
}

func TestDecodeAndPrepare(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("decodes and validates", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"comment":"  ok "}`))
		w := httptest.NewRecorder()
		req, ok := DecodeAndPrepare[commentRequest](w, r, logger, context.Background(), "req-1")
		require.True(t, ok)
		assert.Equal(t, "ok", req.Comment)
	})

	t.Run("empty body yields zero value", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
		w := httptest.NewRecorder()
		req, ok := DecodeAndPrepare[commentRequest](w, r, logger, context.Background(), "req-2")
		require.True(t, ok)
		assert.Empty(t, req.Comment)
	})

	t.Run("malformed JSON is a bad request", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"comment":`))
		w := httptest.NewRecorder()
		_, ok := DecodeAndPrepare[commentRequest](w, r, logger, context.Background(), "req-3")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation failure is written", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"comment":"nope"}`))
		w := httptest.NewRecorder()
		_, ok := DecodeAndPrepare[commentRequest](w, r, logger, context.Background(), "req-4")
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
