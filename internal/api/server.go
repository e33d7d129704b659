// Package api serves the layout pipeline over HTTP.
//
// # Routes
//
//	POST /v1/layout   scene in, layout result out
//	POST /v1/check    scene in, configuration checks only
//	POST /v1/graph    scene in, anchor graph as DOT or SVG (?format=dot|svg)
//	GET  /v1/stats    in-process counters
//	GET  /healthz     liveness and build info
//
// Scenes are posted as JSON, or as TOML with Content-Type application/toml.
// ?refresh=true bypasses the result cache; ?detailed=true annotates graphs.
//
// Every response carries an X-Request-ID header. Errors are JSON objects
// with the error code, message and request id.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/anchorbox/pkg/observability"
	"github.com/matzehuels/anchorbox/pkg/pipeline"
)

// DefaultMaxBodySize limits request bodies.
const DefaultMaxBodySize = 1 << 20

// Server handles API requests with a shared pipeline runner.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	stats   *observability.Stats
	maxBody int64
	timeout time.Duration
}

// Option configures a [Server].
type Option func(*Server)

// WithStats exposes s on /v1/stats. Register it with the observability
// package to have it count anything.
func WithStats(s *observability.Stats) Option {
	return func(srv *Server) { srv.stats = s }
}

// WithMaxBodySize overrides [DefaultMaxBodySize].
func WithMaxBodySize(n int64) Option {
	return func(srv *Server) { srv.maxBody = n }
}

// WithTimeout bounds request handling time. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(srv *Server) { srv.timeout = d }
}

// New creates a server. A nil logger uses log.Default().
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:  runner,
		logger:  logger,
		maxBody: DefaultMaxBodySize,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.stats == nil {
		s.stats = observability.NewStats()
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/check", s.handleCheck)
		r.Post("/graph", s.handleGraph)
		r.Get("/stats", s.handleStats)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
