// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package minutes

import (
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/pdiddy/minutes-engine/internal/httputil"
	"github.com/pdiddy/minutes-engine/pkg/types"
)

// DefaultModel is used when no model override is configured.
const DefaultModel = "gpt-4o-mini"

// CompletionRequest is one system+user chat completion.
type CompletionRequest struct {
	Model       string
	System      string
	User        string
	Temperature float64
	MaxTokens   int
	JSONMode    bool
}

// Backend abstracts the language-model provider so tests can supply a fake.
type Backend interface {
	// ListModels is a minimal read-only call used as a connectivity probe.
	ListModels(ctx context.Context) error

	// Complete issues one chat completion and returns the message body.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// BackendFactory builds a Backend from configuration. It is called by
// Generator.Configure only when a credential is present.
type BackendFactory func(cfg types.AIConfig) (Backend, error)

// OpenAIBackend talks to an OpenAI-compatible API.
type OpenAIBackend struct {
	client openai.Client
}

// NewOpenAIBackend builds a client for cfg. The SDK's own retries are
// disabled: a failed attempt goes straight to the fallback path.
func NewOpenAIBackend(cfg types.AIConfig) (Backend, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, errors.New("api key is empty")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithHTTPClient(httputil.NewClient(cfg.HTTPConfig)),
		option.WithMaxRetries(0),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(base, "/")+"/"))
	}

	return &OpenAIBackend{client: openai.NewClient(opts...)}, nil
}

// ListModels lists the models visible to the credential.
func (b *OpenAIBackend) ListModels(ctx context.Context) error {
	_, err := b.client.Models.List(ctx)
	return err
}

// Complete sends req as a chat completion and returns the first choice.
func (b *OpenAIBackend) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Temperature: openai.Float(req.Temperature),
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
	}
	if req.JSONMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// defaultFactory is the production BackendFactory.
var defaultFactory BackendFactory = NewOpenAIBackend
