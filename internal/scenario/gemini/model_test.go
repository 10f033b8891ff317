package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govos/internal/scenario"
)

func TestComplete(t *testing.T) {
	var path string
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"text\":\"네\",\"moodChange\":0}"}]}}]}`))
	}))
	defer srv.Close()

	m, err := New(context.Background(), "test-key", "", WithBaseURL(srv.URL))
	require.NoError(t, err)

	raw, err := m.Complete(context.Background(), scenario.Request{
		Kind:   scenario.RequestReply,
		System: "system",
		Prompt: "hello",
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"네","moodChange":0}`, raw)
	assert.True(t, strings.HasSuffix(path, DefaultModel+":generateContent"), path)
	assert.Contains(t, body, "systemInstruction")
}

func TestCompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`))
	}))
	defer srv.Close()

	m, err := New(context.Background(), "test-key", "", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = m.Complete(context.Background(), scenario.Request{Kind: scenario.RequestScenario, Prompt: "hi"})

	require.Error(t, err)
	assert.True(t, scenario.IsRetryable(err))
}

func TestSchemaFor(t *testing.T) {
	reply := schemaFor(scenario.RequestReply)
	assert.Contains(t, reply.Properties, "moodChange")

	sc := schemaFor(scenario.RequestScenario)
	profile := sc.Properties["profile"]
	require.NotNil(t, profile)
	assert.Equal(t, []string{"print", "electronic_wallet", "pdf", "fax"}, profile.Properties["deliveryMethod"].Enum)
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(context.Background(), "", "")
	assert.Error(t, err)
}
