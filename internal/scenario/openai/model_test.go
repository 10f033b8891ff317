package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/v3/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govos/internal/scenario"
)

func completionServer(t *testing.T, status int, content string) (*httptest.Server, *map[string]any) {
	t.Helper()
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"nope","type":"invalid_request_error"}}`))
			return
		}
		resp := map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestComplete(t *testing.T) {
	srv, captured := completionServer(t, http.StatusOK, `{"text":"네","moodChange":1}`)
	m, err := New("sk-test", "", option.WithBaseURL(srv.URL))
	require.NoError(t, err)

	raw, err := m.Complete(context.Background(), scenario.Request{
		Kind:   scenario.RequestReply,
		System: "system",
		Prompt: "hello",
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"네","moodChange":1}`, raw)
	assert.Equal(t, DefaultModel, (*captured)["model"])
	format := (*captured)["response_format"].(map[string]any)
	assert.Equal(t, "json_object", format["type"])
	assert.Len(t, (*captured)["messages"], 2)
}

func TestCompleteClassifiesErrors(t *testing.T) {
	tests := []struct {
		status    int
		category  scenario.ErrorCategory
		retryable bool
	}{
		{http.StatusUnauthorized, scenario.ErrorAuthentication, false},
		{http.StatusTooManyRequests, scenario.ErrorRateLimited, true},
		{http.StatusBadGateway, scenario.ErrorOutage, true},
		{http.StatusBadRequest, scenario.ErrorBadData, false},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv, _ := completionServer(t, tt.status, "")
			m, err := New("sk-test", "gpt-4o-mini", option.WithBaseURL(srv.URL))
			require.NoError(t, err)

			_, err = m.Complete(context.Background(), scenario.Request{Kind: scenario.RequestReply, Prompt: "hi"})

			require.Error(t, err)
			assert.Equal(t, tt.category, scenario.CategoryOf(err))
			assert.Equal(t, tt.retryable, scenario.IsRetryable(err))
		})
	}
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New("", "")
	assert.Error(t, err)
}
