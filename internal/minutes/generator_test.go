// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package minutes

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/minutes-engine/pkg/types"
)

// fakeBackend records calls and returns canned results.
type fakeBackend struct {
	listErr   error
	body      string
	err       error
	explode   bool
	listCalls int
	requests  []CompletionRequest
}

func (f *fakeBackend) ListModels(ctx context.Context) error {
	f.listCalls++
	return f.listErr
}

func (f *fakeBackend) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.explode {
		panic("transport blew up")
	}
	return f.body, f.err
}

func newTestGenerator(t *testing.T, fb *fakeBackend) *Generator {
	t.Helper()
	g := New(
		WithBackendFactory(func(types.AIConfig) (Backend, error) { return fb, nil }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	g.Configure(types.AIConfig{APIKey: "sk-test"})
	require.Equal(t, StateReady, g.State())
	return g
}

func TestNewIsUninitialized(t *testing.T) {
	g := New()
	assert.Equal(t, StateUninitialized, g.State())
	assert.Equal(t, DefaultModel, g.Model())
	assert.Empty(t, g.LastError())
}

func TestConfigure(t *testing.T) {
	tests := []struct {
		name      string
		cfg       types.AIConfig
		factory   BackendFactory
		wantState State
		wantErr   string
		wantModel string
	}{
		{
			name:      "empty credential",
			cfg:       types.AIConfig{APIKey: "   "},
			wantState: StateUninitialized,
			wantErr:   "OPENAI_API_KEY is missing",
			wantModel: DefaultModel,
		},
		{
			name: "factory error",
			cfg:  types.AIConfig{APIKey: "sk-test"},
			factory: func(types.AIConfig) (Backend, error) {
				return nil, errors.New("bad base url")
			},
			wantState: StateUninitialized,
			wantErr:   "Failed to initialize OpenAI client: bad base url",
			wantModel: DefaultModel,
		},
		{
			name: "factory panic",
			cfg:  types.AIConfig{APIKey: "sk-test"},
			factory: func(types.AIConfig) (Backend, error) {
				panic("boom")
			},
			wantState: StateUninitialized,
			wantErr:   "Failed to initialize OpenAI client: panic: boom",
			wantModel: DefaultModel,
		},
		{
			name: "model override",
			cfg:  types.AIConfig{APIKey: "sk-test", Model: " gpt-4o "},
			factory: func(types.AIConfig) (Backend, error) {
				return &fakeBackend{}, nil
			},
			wantState: StateReady,
			wantModel: "gpt-4o",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := []Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}
			if tt.factory != nil {
				opts = append(opts, WithBackendFactory(tt.factory))
			}
			g := New(opts...)
			g.Configure(tt.cfg)

			assert.Equal(t, tt.wantState, g.State())
			assert.Equal(t, tt.wantErr, g.LastError())
			assert.Equal(t, tt.wantModel, g.Model())
			if tt.wantErr != "" {
				assert.ErrorIs(t, g.Err(), ErrConfiguration)
			}
		})
	}
}

func TestConfigureClearsPreviousClient(t *testing.T) {
	fb := &fakeBackend{}
	g := newTestGenerator(t, fb)

	g.Configure(types.AIConfig{})

	assert.Equal(t, StateUninitialized, g.State())
	ok, _ := g.TestConnection(context.Background())
	assert.False(t, ok)
	assert.Zero(t, fb.listCalls)
}

func TestTestConnectionUninitializedMakesNoCall(t *testing.T) {
	called := false
	g := New(WithBackendFactory(func(types.AIConfig) (Backend, error) {
		called = true
		return &fakeBackend{}, nil
	}))

	ok, msg := g.TestConnection(context.Background())

	assert.False(t, ok)
	assert.NotEmpty(t, msg)
	assert.False(t, called)
}

func TestTestConnectionReportsMissingKey(t *testing.T) {
	g := New(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	g.Configure(types.AIConfig{})

	ok, msg := g.TestConnection(context.Background())

	assert.False(t, ok)
	assert.Equal(t, "OPENAI_API_KEY is missing", msg)
}

func TestTestConnection(t *testing.T) {
	fb := &fakeBackend{}
	g := newTestGenerator(t, fb)

	ok, msg := g.TestConnection(context.Background())

	assert.True(t, ok)
	assert.Equal(t, "Connection successful", msg)
	assert.Equal(t, 1, fb.listCalls)
	assert.Empty(t, g.LastError())
}

func TestTestConnectionFailure(t *testing.T) {
	fb := &fakeBackend{listErr: errors.New("401 Unauthorized")}
	g := newTestGenerator(t, fb)

	ok, msg := g.TestConnection(context.Background())

	assert.False(t, ok)
	assert.Equal(t, "401 Unauthorized", msg)
	assert.Equal(t, msg, g.LastError())
	assert.Equal(t, StateDegraded, g.State())
	assert.ErrorIs(t, g.Err(), ErrConnectivity)

	fb.listErr = nil
	ok, _ = g.TestConnection(context.Background())
	assert.True(t, ok)
	assert.Equal(t, StateReady, g.State())
	assert.Empty(t, g.LastError())
}

func TestGenerateUninitializedMakesNoCall(t *testing.T) {
	g := New()

	res := g.Generate(context.Background(), "Alice: hi")

	assert.False(t, res.OK)
	assert.Equal(t, types.FallbackRecord(), res.Record)
	assert.ErrorIs(t, res.Err, ErrConfiguration)
	assert.Equal(t, "OpenAI client is not initialized", g.LastError())
}

func TestGenerateRequest(t *testing.T) {
	fb := &fakeBackend{body: `{"summary":"ok"}`}
	g := newTestGenerator(t, fb)

	g.Generate(context.Background(), "Bob: hello")

	require.Len(t, fb.requests, 1)
	req := fb.requests[0]
	assert.Equal(t, DefaultModel, req.Model)
	assert.Equal(t, SystemPrompt(), req.System)
	assert.Equal(t, "Analyze this meeting transcript:\n\nBob: hello", req.User)
	assert.Equal(t, 0.2, req.Temperature)
	assert.Equal(t, 3000, req.MaxTokens)
	assert.True(t, req.JSONMode)
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name    string
		backend *fakeBackend
		wantErr error
		wantMsg string
	}{
		{
			name:    "transport error",
			backend: &fakeBackend{err: errors.New("connection reset by peer")},
			wantErr: ErrGeneration,
			wantMsg: "connection reset by peer",
		},
		{
			name:    "transport panic",
			backend: &fakeBackend{explode: true},
			wantErr: ErrGeneration,
			wantMsg: "panic: transport blew up",
		},
		{
			name:    "not json",
			backend: &fakeBackend{body: "Sure! Here are your minutes."},
			wantErr: ErrGeneration,
			wantMsg: "parsing response JSON",
		},
		{
			name:    "json array",
			backend: &fakeBackend{body: `["a"]`},
			wantErr: ErrSchema,
			wantMsg: "response is a JSON array, want object",
		},
		{
			name:    "wrong list shape",
			backend: &fakeBackend{body: `{"summary":"s","participants":{"name":"Alice"}}`},
			wantErr: ErrSchema,
			wantMsg: `field "participants"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGenerator(t, tt.backend)

			var res Result
			require.NotPanics(t, func() {
				res = g.Generate(context.Background(), "Alice: hi")
			})

			assert.False(t, res.OK)
			assert.Equal(t, types.FallbackSummary, res.Record.Summary)
			assert.True(t, types.IsFallback(res.Record))
			assert.ErrorIs(t, res.Err, tt.wantErr)
			assert.Contains(t, g.LastError(), tt.wantMsg)
			assert.Equal(t, StateDegraded, g.State())
		})
	}
}

func TestGenerateSchemaErrorIsGenerationError(t *testing.T) {
	g := newTestGenerator(t, &fakeBackend{body: `"just a string"`})

	res := g.Generate(context.Background(), "x")

	assert.ErrorIs(t, res.Err, ErrSchema)
	assert.ErrorIs(t, res.Err, ErrGeneration)
}

func TestGenerateMinutesEndToEnd(t *testing.T) {
	fb := &fakeBackend{body: `{"summary":"Team agreed to ship v2 Friday.","participants":["Alice"],"discussion_points":[],"outcomes_or_decisions":["Ship v2 Friday"],"next_steps":[]}`}
	g := newTestGenerator(t, fb)

	got := g.GenerateMinutes(context.Background(), "Alice: Let's ship v2 Friday.")

	assert.Equal(t, types.MinutesRecord{
		Summary:             "Team agreed to ship v2 Friday.",
		Participants:        []string{"Alice"},
		DiscussionPoints:    []string{},
		OutcomesOrDecisions: []string{"Ship v2 Friday"},
		NextSteps:           []string{},
	}, got)
	assert.False(t, types.IsFallback(got))
	assert.Empty(t, g.LastError())
}

func TestGenerateRecoversAfterFailure(t *testing.T) {
	fb := &fakeBackend{err: errors.New("timeout")}
	g := newTestGenerator(t, fb)

	res := g.Generate(context.Background(), "x")
	require.False(t, res.OK)
	assert.Equal(t, "timeout", g.LastError())

	fb.err = nil
	fb.body = `{"summary":"Recovered."}`
	res = g.Generate(context.Background(), "x")

	assert.True(t, res.OK)
	assert.Equal(t, "Recovered.", res.Record.Summary)
	assert.Equal(t, StateReady, g.State())
	assert.Empty(t, g.LastError())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "degraded", StateDegraded.String())
}
