package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "phonebook/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error omits message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.Wrap(errors.New("dial tcp: refused"), dErrors.CodeInternal, "db failed"))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		var body map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "internal error", body["error"])
	})

	t.Run("uncoded error is internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("validation error carries its message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeValidation, "name missing"))

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "name missing", body["error"])
	})

	t.Run("conflict maps to bad request", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeConflict, "name must be unique"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"name must be unique"}`, w.Body.String())
	})

	t.Run("not found has an empty body", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeNotFound, "contact not found"))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

type probeRequest struct {
	Name string `json:"name"`
}

func (r *probeRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name missing")
	}
	return nil
}

func TestDecodeAndPrepare(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	t.Run("decodes and normalizes", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"name":"  Ada "}`))
		req, ok := DecodeAndPrepare[probeRequest](w, r, logger, ctx, "req-1")
		require.True(t, ok)
		assert.Equal(t, "Ada", req.Name)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"name":`))
		_, ok := DecodeAndPrepare[probeRequest](w, r, logger, ctx, "req-2")
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"invalid request body"}`, w.Body.String())
	})

	t.Run("empty body reaches validation", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
		_, ok := DecodeAndPrepare[probeRequest](w, r, logger, ctx, "req-3")
		require.False(t, ok)
		assert.JSONEq(t, `{"error":"name missing"}`, w.Body.String())
	})
}
