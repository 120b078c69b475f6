// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used for calls to the model provider.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means 120s.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "minutes-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds the single credential and model selection for the
// language-model provider.
type AIConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the provider credential. An empty key leaves the generator
	// uninitialized.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL optionally overrides the provider endpoint.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Model is the model identifier (default "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`
}

// ExtractionBackend selects how uploaded documents are turned into text.
type ExtractionBackend string

const (
	ExtractNative     ExtractionBackend = "native"
	ExtractMarkitdown ExtractionBackend = "markitdown"
)

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8710").
	Addr string `json:"addr" yaml:"addr"`

	// MaxUploadBytes caps the size of uploaded transcripts (default 20 MiB).
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// Format is "text" or "json".
	Format string `json:"format" yaml:"format"`
}

// Config groups every setting read at startup.
type Config struct {
	OpenAI  AIConfig          `json:"openai" yaml:"openai"`
	Extract ExtractionBackend `json:"extract_backend" yaml:"extract_backend"`
	Server  ServerConfig      `json:"server" yaml:"server"`
	Log     LogConfig         `json:"log" yaml:"log"`
}
