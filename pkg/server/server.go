// Package server exposes fat-tree layouts and selection sessions over HTTP.
//
// Stateless endpoints under /api/v1/topology compute layouts, counts and
// rendered artifacts through a pipeline.Runner. Session endpoints under
// /api/v1/sessions keep a selection per client in a session.Store: each
// request loads the session, replays it into a selection.Controller, applies
// the change and stores the new snapshot.
//
// Errors are returned as JSON {"code": ..., "message": ...}. INVALID_TOPOLOGY
// maps to 422, the other validation codes to 400 and SESSION_NOT_FOUND to 404.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/fattree/pkg/fattree"
	"github.com/matzehuels/fattree/pkg/pipeline"
	"github.com/matzehuels/fattree/pkg/session"
)

// Server serves the HTTP API.
type Server struct {
	runner     *pipeline.Runner
	store      session.Store
	defaults   fattree.Params
	sessionTTL time.Duration
	metrics    http.Handler
	logger     *log.Logger

	// mu serializes load-modify-store cycles on sessions within this process.
	mu sync.Mutex

	router chi.Router
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaults sets the topology used when a request omits depth and width.
func WithDefaults(p fattree.Params) Option {
	return func(s *Server) { s.defaults = p }
}

// WithSessionTTL sets how long a session lives after its last update.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// New creates a server backed by runner and store.
func New(runner *pipeline.Runner, store session.Store, opts ...Option) *Server {
	s := &Server{
		runner:     runner,
		store:      store,
		defaults:   fattree.DefaultParams(),
		sessionTTL: session.DefaultTTL,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Config holds the listener settings for [Server.ListenAndServe].
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// Expired sessions are swept every cleanupInterval while serving.
func (s *Server) ListenAndServe(ctx context.Context, cfg Config) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go s.cleanupLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

const cleanupInterval = 10 * time.Minute

func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.store.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "error", err)
			}
		}
	}
}
