package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "jornada/pkg/domain-errors"
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

	t.Run("bad request includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid input"))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "bad_request" {
			t.Fatalf("expected error code bad_request, got %q", body["error"])
		}
		if body["error_description"] != "invalid input" {
			t.Fatalf("expected error_description to be returned for bad request")
		}
	})

	t.Run("plain error reported as internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("connection reset"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}

type echoRequest struct {
	Value string `json:"value"`
}

func (r *echoRequest) Normalize() {
	r.Value = strings.TrimSpace(r.Value)
}

func (r *echoRequest) Validate() error {
	if r.Value == "" {
		return dErrors.New(dErrors.CodeValidation, "value is required")
	}
	return nil
}

func TestDecodeAndPrepare(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	decode := func(body string) (*echoRequest, *httptest.ResponseRecorder, bool) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		w := httptest.NewRecorder()
		req, ok := DecodeAndPrepare[echoRequest](w, r, logger, context.Background(), "req-1")
		return req, w, ok
	}

	t.Run("normalizes and validates", func(t *testing.T) {
		req, _, ok := decode(`{"value":"  12.345.678-5  "}`)
		require.True(t, ok)
		assert.Equal(t, "12.345.678-5", req.Value)
	})

	t.Run("malformed JSON is a bad request", func(t *testing.T) {
		_, w, ok := decode(`{"value":`)
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "bad_request")
	})

	t.Run("empty body is a bad request", func(t *testing.T) {
		_, w, ok := decode(``)
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "request body is required")
	})

	t.Run("trailing data is a bad request", func(t *testing.T) {
		_, w, ok := decode(`{"value":"1"}garbage`)
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "single JSON object")
	})

	t.Run("second object is a bad request", func(t *testing.T) {
		_, w, ok := decode(`{"value":"1"} {"value":"2"}`)
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("trailing whitespace is accepted", func(t *testing.T) {
		req, _, ok := decode("{\"value\":\"1\"}\n  ")
		require.True(t, ok)
		assert.Equal(t, "1", req.Value)
	})

	t.Run("validation failure uses domain code", func(t *testing.T) {
		_, w, ok := decode(`{"value":"   "}`)
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation_error")
	})
}
