// Package server exposes the catalog over HTTP.
//
// The server is a stateless read API: every request resolves the
// current snapshot through the cache store, applies the query
// parameters, and renders JSON. Query responses are memoized in a
// short-lived response cache keyed by the snapshot's fetch time, so a
// catalog refresh invalidates them wholesale.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/snowdex/snowdex/pkg/cache"
	"github.com/snowdex/snowdex/pkg/config"
	"github.com/snowdex/snowdex/pkg/observability"
)

// shutdownTimeout bounds the drain period for in-flight requests.
const shutdownTimeout = 15 * time.Second

// Server hosts the catalog API.
type Server struct {
	cfg       config.Config
	store     *cache.Store
	logger    *log.Logger
	responses *responseCache
	metrics   *metrics
	registry  *prometheus.Registry
}

// New creates a Server over the given store. The server registers its
// metrics backend as the process-wide observability hooks, so fetch
// and cache events land in this server's /metrics output.
func New(cfg config.Config, store *cache.Store, logger *log.Logger) *Server {
	registry := prometheus.NewRegistry()
	m := newMetrics(registry)
	observability.SetFetchHooks(m)
	observability.SetCacheHooks(m)
	observability.SetQueryHooks(m)

	return &Server{
		cfg:       cfg,
		store:     store,
		logger:    logger,
		responses: newResponseCache(cfg.CacheDuration),
		metrics:   m,
		registry:  registry,
	}
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.securityHeaders)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.cacheHeaders)
		r.Get("/packages", s.handlePackages)
		r.Get("/packages/{name}", s.handlePackage)
		r.Get("/licenses", s.handleLicenses)
		r.Get("/stats", s.handleStats)
	})
	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests
// for up to shutdownTimeout before returning.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("serving catalog API", "addr", s.cfg.ListenAddr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "drain", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
