// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil builds the HTTP client used for provider calls.
package httputil

import (
	"net/http"
	"time"

	"github.com/pdiddy/minutes-engine/pkg/types"
)

// Defaults applied when HTTPConfig leaves a field zero.
const (
	DefaultTimeout   = 120 * time.Second
	DefaultUserAgent = "minutes-engine/0.1"
)

// NewClient returns an http.Client with cfg's timeout that stamps every
// request with cfg's User-Agent. It performs no retries; a failed request
// surfaces to the caller as-is.
func NewClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{base: http.DefaultTransport, userAgent: ua},
	}
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

// RoundTrip sets the User-Agent on a clone; RoundTrippers must not mutate
// the caller's request.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}
