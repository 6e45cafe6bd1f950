// Package server exposes the hypertower pipeline over HTTP.
//
// Routes:
//
//	POST /v1/levels             level table of the posted graph
//	POST /v1/layout             serialized layout ([graph.Layout])
//	POST /v1/render?format=svg  one rendered artifact
//	GET  /healthz               build information
//	GET  /metrics               Prometheus metrics
//
// Request bodies are JSON graphs in the [graph.Graph] format. Layout and
// render options travel as query parameters named like the JSON fields of
// [pipeline.Options] (viz_type, max_depth, style, title, hide_labels,
// font_labels, embed_font, interactive, scale, refresh).
//
// Errors are JSON objects carrying the [errs.Code] of the failure; the
// status code comes from [errs.HTTPStatus].
//
// [graph.Graph]: github.com/matzehuels/hypertower/pkg/graph
// [graph.Layout]: github.com/matzehuels/hypertower/pkg/graph
// [pipeline.Options]: github.com/matzehuels/hypertower/pkg/pipeline
// [errs.Code]: github.com/matzehuels/hypertower/pkg/errors
// [errs.HTTPStatus]: github.com/matzehuels/hypertower/pkg/errors
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/hypertower/pkg/pipeline"
)

// Defaults for [Config].
const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 8 << 20
	DefaultTimeout      = 60 * time.Second
	shutdownGrace       = 10 * time.Second
)

// Config configures a [Server].
type Config struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`

	// Timeout bounds the handling of one request.
	Timeout time.Duration `toml:"-"`

	Runner   *pipeline.Runner    `toml:"-"`
	Logger   *log.Logger         `toml:"-"`
	Gatherer prometheus.Gatherer `toml:"-"`
}

// Server serves the HTTP API.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server. A nil Runner gets an uncached one; a nil Gatherer
// serves the default Prometheus registry.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	s := &Server{cfg: cfg, runner: cfg.Runner, logger: cfg.Logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.Timeout))
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/levels", s.handleLevels)
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFound(r.URL.Path))
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
