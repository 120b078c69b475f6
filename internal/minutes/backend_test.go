// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package minutes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/minutes-engine/pkg/types"
)

// stubProvider serves the two OpenAI endpoints the backend uses.
type stubProvider struct {
	status  int
	content string
	calls   int32
	body    map[string]any
	auth    string
}

func (s *stubProvider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&s.calls, 1)
	s.auth = r.Header.Get("Authorization")

	if s.status != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.status)
		io.WriteString(w, `{"error":{"message":"stub failure","type":"server_error"}}`)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/models":
		io.WriteString(w, `{"object":"list","data":[{"id":"gpt-4o-mini","object":"model","created":0,"owned_by":"system"}]}`)
	case "/chat/completions":
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &s.body)
		content, _ := json.Marshal(s.content)
		io.WriteString(w, `{"id":"chatcmpl-1","object":"chat.completion","created":0,"model":"gpt-4o-mini","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":`+string(content)+`}}]}`)
	default:
		http.NotFound(w, r)
	}
}

func newStubBackend(t *testing.T, stub *stubProvider) Backend {
	t.Helper()
	ts := httptest.NewServer(stub)
	t.Cleanup(ts.Close)

	b, err := NewOpenAIBackend(types.AIConfig{APIKey: "sk-test", BaseURL: ts.URL})
	require.NoError(t, err)
	return b
}

func TestNewOpenAIBackendRequiresKey(t *testing.T) {
	_, err := NewOpenAIBackend(types.AIConfig{})
	assert.Error(t, err)
}

func TestOpenAIBackendListModels(t *testing.T) {
	stub := &stubProvider{}
	b := newStubBackend(t, stub)

	require.NoError(t, b.ListModels(context.Background()))
	assert.Equal(t, "Bearer sk-test", stub.auth)
}

func TestOpenAIBackendComplete(t *testing.T) {
	stub := &stubProvider{content: `{"summary":"ok"}`}
	b := newStubBackend(t, stub)

	got, err := b.Complete(context.Background(), CompletionRequest{
		Model:       "gpt-4o-mini",
		System:      "sys",
		User:        "usr",
		Temperature: 0.2,
		MaxTokens:   3000,
		JSONMode:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, got)

	require.NotNil(t, stub.body)
	assert.Equal(t, "gpt-4o-mini", stub.body["model"])
	assert.InDelta(t, 0.2, stub.body["temperature"], 1e-9)
	assert.EqualValues(t, 3000, stub.body["max_tokens"])
	assert.Equal(t, map[string]any{"type": "json_object"}, stub.body["response_format"])

	msgs, ok := stub.body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "sys", msgs[0].(map[string]any)["content"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
	assert.Equal(t, "usr", msgs[1].(map[string]any)["content"])
}

func TestOpenAIBackendDoesNotRetry(t *testing.T) {
	stub := &stubProvider{status: http.StatusInternalServerError}
	b := newStubBackend(t, stub)

	_, err := b.Complete(context.Background(), CompletionRequest{Model: "gpt-4o-mini", User: "x"})

	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.calls))
}

func TestGeneratorAgainstStubProvider(t *testing.T) {
	stub := &stubProvider{content: `{"summary":"Team agreed to ship v2 Friday.","participants":["Alice"],"discussion_points":[],"outcomes_or_decisions":["Ship v2 Friday"],"next_steps":[]}`}
	ts := httptest.NewServer(stub)
	defer ts.Close()

	g := New()
	g.Configure(types.AIConfig{APIKey: "sk-test", BaseURL: ts.URL})

	ok, msg := g.TestConnection(context.Background())
	require.True(t, ok, msg)

	res := g.Generate(context.Background(), "Alice: Let's ship v2 Friday.")
	require.True(t, res.OK, g.LastError())
	assert.Equal(t, []string{"Alice"}, res.Record.Participants)
	assert.Equal(t, "Analyze this meeting transcript:\n\nAlice: Let's ship v2 Friday.",
		stub.body["messages"].([]any)[1].(map[string]any)["content"])
}
