// Package api implements the HTTP solve service exposed by "tilegarden
// serve". It wraps a pipeline.Runner so the API and the CLI share caching
// and rendering behavior, and records every solve in a store.Store so
// results can be fetched again later.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tilegarden/tilegarden/pkg/pipeline"
	"github.com/tilegarden/tilegarden/pkg/store"
)

const (
	// DefaultAddr is the listen address when none is configured.
	DefaultAddr = ":8080"

	// requestTimeout bounds one request end to end, including the solve.
	requestTimeout = 60 * time.Second

	// shutdownTimeout bounds graceful shutdown on context cancellation.
	shutdownTimeout = 10 * time.Second
)

// Config carries the server dependencies.
type Config struct {
	// Addr is the listen address. Defaults to DefaultAddr.
	Addr string

	// Runner executes solves. Defaults to an uncached runner.
	Runner *pipeline.Runner

	// Store records solve runs. Defaults to an in-memory store.
	Store store.Store

	// Logger receives request and lifecycle logs.
	Logger *log.Logger
}

// Server is the HTTP solve service.
type Server struct {
	addr   string
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// NewServer builds the server and its routes.
func NewServer(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}

	s := &Server{
		addr:   cfg.Addr,
		runner: cfg.Runner,
		store:  cfg.Store,
		logger: cfg.Logger,
	}
	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logMiddleware)
	r.Use(hooksMiddleware)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	})

	s.router = r
}

// Router returns the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Serve runs the server until the context is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  requestTimeout,
		WriteTimeout: requestTimeout,
		IdleTimeout:  2 * requestTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
