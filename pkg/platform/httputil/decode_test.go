package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	dErrors "govos/pkg/domain-errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatBody struct {
	Text string `json:"text"`
}

type validatingBody struct {
	Text       string `json:"text"`
	normalized bool
}

func (b *validatingBody) Normalize() {
	b.Text = strings.TrimSpace(b.Text)
	b.normalized = true
}

func (b *validatingBody) Validate() error {
	if b.Text == "" {
		return errors.New("text is required")
	}
	return nil
}

type stateBody struct{}

func (b *stateBody) Validate() error {
	return dErrors.New(dErrors.CodeInvalidState, "no active scenario")
}

func TestDecodeJSON(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()

	t.Run("successful decode", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"text":"안녕하세요"}`))
		w := httptest.NewRecorder()

		result, ok := DecodeJSON[chatBody](w, req, logger, ctx, "req-1")

		assert.True(t, ok)
		require.NotNil(t, result)
		assert.Equal(t, "안녕하세요", result.Text)
	})

	t.Run("invalid JSON returns bad_request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{invalid`))
		w := httptest.NewRecorder()

		result, ok := DecodeJSON[chatBody](w, req, logger, ctx, "req-1")

		assert.False(t, ok)
		assert.Nil(t, result)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var errResp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
		assert.Equal(t, "bad_request", errResp["error"])
	})

	t.Run("oversized body is rejected", func(t *testing.T) {
		huge := `{"text":"` + strings.Repeat("a", 70*1024) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(huge))
		w := httptest.NewRecorder()

		_, ok := DecodeJSON[chatBody](w, req, logger, ctx, "req-1")

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDecodeAndPrepare(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()

	t.Run("normalizes before validating", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"text":"  주소요  "}`))
		w := httptest.NewRecorder()

		result, ok := DecodeAndPrepare[validatingBody](w, req, logger, ctx, "req-1")

		require.True(t, ok)
		assert.True(t, result.normalized)
		assert.Equal(t, "주소요", result.Text)
	})

	t.Run("plain validation error maps to validation_error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"text":"   "}`))
		w := httptest.NewRecorder()

		_, ok := DecodeAndPrepare[validatingBody](w, req, logger, ctx, "req-1")

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		var errResp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
		assert.Equal(t, "validation_error", errResp["error"])
		assert.Equal(t, "text is required", errResp["error_description"])
	})

	t.Run("preserves domain error code from Validate", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{}`))
		w := httptest.NewRecorder()

		_, ok := DecodeAndPrepare[stateBody](w, req, logger, ctx, "req-1")

		assert.False(t, ok)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		code   dErrors.Code
		status int
		body   string
	}{
		{dErrors.CodeNotFound, http.StatusNotFound, "not_found"},
		{dErrors.CodeInvalidState, http.StatusConflict, "invalid_state"},
		{dErrors.CodeUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{dErrors.CodeTimeout, http.StatusGatewayTimeout, "timeout"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(tc.code, "x"))
		assert.Equal(t, tc.status, w.Code, tc.code)
		assert.Contains(t, w.Body.String(), tc.body)
	}

	w := httptest.NewRecorder()
	WriteError(w, errors.New("plain"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
}

func TestStatusFor(t *testing.T) {
	status, name := StatusFor(dErrors.CodeUnavailable)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "unavailable", name)

	status, name = StatusFor(dErrors.Code("mission_exploded"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", name)
}
