// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package minutes turns a meeting transcript into a canonical MinutesRecord
// with one chat-completion call. The Generator owns the provider client and
// never returns an error or panics past its boundary: failures become a
// (false, message) pair or the fallback record, with the cause kept in
// LastError.
package minutes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdiddy/minutes-engine/pkg/types"
)

// Messages surfaced to callers.
const (
	msgConnected      = "Connection successful"
	msgNotInitialized = "OpenAI client is not initialized"
	msgMissingKey     = "OPENAI_API_KEY is missing"
)

// State is the Generator's lifecycle state.
type State int

const (
	// StateUninitialized means no credential is configured.
	StateUninitialized State = iota
	// StateReady means a client exists; connectivity may be unverified.
	StateReady
	// StateDegraded means the last operation failed.
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateDegraded:
		return "degraded"
	default:
		return "uninitialized"
	}
}

// Result is the tagged outcome of a generation. Record is the fallback
// record whenever OK is false.
type Result struct {
	Record types.MinutesRecord
	OK     bool
	Err    error
}

// Generator holds the provider client, model, and most recent error. It is
// meant to be created once per session and reused; it is not safe for
// concurrent use, so callers must serialize access.
type Generator struct {
	factory BackendFactory
	backend Backend
	model   string
	state   State
	lastErr error
	logger  *slog.Logger
}

// Option customizes a Generator.
type Option func(*Generator)

// WithBackendFactory replaces the OpenAI client constructor.
func WithBackendFactory(f BackendFactory) Option {
	return func(g *Generator) { g.factory = f }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// New returns an uninitialized Generator. Call Configure before use.
func New(opts ...Option) *Generator {
	g := &Generator{
		factory: defaultFactory,
		model:   DefaultModel,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Configure (re)initializes the provider client. An empty credential or a
// client construction failure clears the client, leaves the Generator
// uninitialized, and records the reason.
func (g *Generator) Configure(cfg types.AIConfig) {
	g.model = DefaultModel
	if m := strings.TrimSpace(cfg.Model); m != "" {
		g.model = m
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		g.reset(newError(ErrConfiguration, msgMissingKey, nil))
		return
	}

	var backend Backend
	err := guard(func() error {
		var err error
		backend, err = g.factory(cfg)
		return err
	})
	if err == nil && backend == nil {
		err = errors.New("no client returned")
	}
	if err != nil {
		g.reset(newError(ErrConfiguration, "Failed to initialize OpenAI client", err))
		return
	}

	g.backend = backend
	g.state = StateReady
	g.lastErr = nil
	g.logger.Debug("generator configured", "model", g.model, "custom_endpoint", cfg.BaseURL != "")
}

func (g *Generator) reset(err *Error) {
	g.backend = nil
	g.state = StateUninitialized
	g.lastErr = err
	g.logger.Warn("generator not configured", "error", err.Error())
}

// TestConnection probes the provider with a read-only list-models call.
// It never touches the network when the Generator is uninitialized.
func (g *Generator) TestConnection(ctx context.Context) (bool, string) {
	if g.backend == nil {
		return false, g.notInitializedReason()
	}

	if err := guard(func() error { return g.backend.ListModels(ctx) }); err != nil {
		g.degrade(newError(ErrConnectivity, "", err))
		return false, g.lastErr.Error()
	}

	g.state = StateReady
	g.lastErr = nil
	return true, msgConnected
}

// Generate produces minutes for transcript. It issues at most one
// completion request and never retries.
func (g *Generator) Generate(ctx context.Context, transcript string) Result {
	if g.backend == nil {
		if g.lastErr == nil {
			g.lastErr = newError(ErrConfiguration, msgNotInitialized, nil)
		}
		return Result{Record: types.FallbackRecord(), Err: g.lastErr}
	}

	req := CompletionRequest{
		Model:       g.model,
		System:      SystemPrompt(),
		User:        UserMessage(transcript),
		Temperature: temperature,
		MaxTokens:   maxTokens,
		JSONMode:    true,
	}

	var body string
	err := guard(func() error {
		var err error
		body, err = g.backend.Complete(ctx, req)
		return err
	})
	if err != nil {
		return g.fail(newError(ErrGeneration, "", err))
	}

	record, err := ParseResponse(body)
	if err != nil {
		return g.fail(err)
	}

	g.state = StateReady
	g.lastErr = nil
	g.logger.Debug("minutes generated",
		"model", g.model,
		"transcript_chars", len(transcript),
		"participants", len(record.Participants),
	)
	return Result{Record: record, OK: true}
}

// GenerateMinutes returns the record from Generate. On failure it is the
// fallback record and LastError explains why.
func (g *Generator) GenerateMinutes(ctx context.Context, transcript string) types.MinutesRecord {
	return g.Generate(ctx, transcript).Record
}

func (g *Generator) fail(err error) Result {
	g.degrade(err)
	return Result{Record: types.FallbackRecord(), Err: err}
}

func (g *Generator) degrade(err error) {
	g.state = StateDegraded
	g.lastErr = err
	g.logger.Warn("provider call failed", "model", g.model, "error", err.Error())
}

func (g *Generator) notInitializedReason() string {
	if g.lastErr != nil {
		return g.lastErr.Error()
	}
	return msgNotInitialized
}

// LastError returns the most recent failure message, or "".
func (g *Generator) LastError() string {
	if g.lastErr == nil {
		return ""
	}
	return g.lastErr.Error()
}

// Err returns the most recent classified failure, or nil.
func (g *Generator) Err() error { return g.lastErr }

// State returns the lifecycle state.
func (g *Generator) State() State { return g.state }

// Model returns the configured model identifier.
func (g *Generator) Model() string { return g.model }

// guard runs fn and converts a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
