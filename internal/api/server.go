// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api exposes extraction, connectivity checks, and per-session
// minutes generation over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/minutes-engine/internal/extract"
	"github.com/pdiddy/minutes-engine/internal/minutes"
	"github.com/pdiddy/minutes-engine/internal/session"
	"github.com/pdiddy/minutes-engine/pkg/types"
)

// Defaults applied to a zero ServerConfig.
const (
	DefaultAddr           = ":8710"
	DefaultMaxUploadBytes = 20 << 20
)

const shutdownTimeout = 10 * time.Second

// Server routes API requests. The Generator is not safe for concurrent use,
// so every call into it holds genMu. genState mirrors the Generator's state
// after each call so health checks never wait on a provider request.
type Server struct {
	genMu     sync.Mutex
	gen       *minutes.Generator
	genState  atomic.Int32
	sessions  *session.Store
	extractor extract.Extractor
	addr      string
	maxUpload int64
	logger    *slog.Logger
	router    chi.Router
}

// NewServer wires the routes. A nil extractor uses extract.Native.
func NewServer(gen *minutes.Generator, sessions *session.Store, ex extract.Extractor, cfg types.ServerConfig, logger *slog.Logger) *Server {
	if ex == nil {
		ex = extract.Native{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{
		gen:       gen,
		sessions:  sessions,
		extractor: ex,
		addr:      cfg.Addr,
		maxUpload: cfg.MaxUploadBytes,
		logger:    logger,
	}
	srv.genState.Store(int32(gen.State()))
	if srv.addr == "" {
		srv.addr = DefaultAddr
	}
	if srv.maxUpload <= 0 {
		srv.maxUpload = DefaultMaxUploadBytes
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", srv.handleHealth)
		r.Get("/connection", srv.handleConnection)
		r.Post("/extract", srv.handleExtract)
		r.Post("/sessions", srv.handleCreateSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", srv.handleGetSession)
			r.Delete("/", srv.handleDeleteSession)
			r.Post("/minutes", srv.handleGenerate)
			r.Get("/minutes", srv.handleGetMinutes)
			r.Get("/minutes.md", srv.handleDownloadMarkdown)
		})
	})

	srv.router = r
	return srv
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	hs := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP API", "addr", s.addr)
		errCh <- hs.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	state := minutes.State(s.genState.Load())

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"service":   "minutes-engine",
		"generator": state.String(),
		"sessions":  s.sessions.Len(),
	})
}

func (s *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	var (
		ok         bool
		msg, model string
	)
	s.withGenerator(func(g *minutes.Generator) {
		ok, msg = g.TestConnection(r.Context())
		model = g.Model()
	})

	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"ok":      ok,
		"message": msg,
		"model":   model,
	})
}

// withGenerator runs fn while holding genMu and publishes the resulting state.
func (s *Server) withGenerator(fn func(g *minutes.Generator)) {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	fn(s.gen)
	s.genState.Store(int32(s.gen.State()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
