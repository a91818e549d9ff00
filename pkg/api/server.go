package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cuemby/airflow-exporter/pkg/log"
	"github.com/cuemby/airflow-exporter/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Config holds the HTTP server configuration.
type Config struct {
	ListenAddress   string
	MetricsPath     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		ListenAddress:   ":9112",
		MetricsPath:     "/metrics",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    60 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server exposes the metrics registry and the health endpoints over HTTP.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	config     Config
	registry   *prometheus.Registry
	health     *HealthServer
	logger     zerolog.Logger
}

// NewServer creates a Server. It does not start listening.
func NewServer(cfg Config, reg *prometheus.Registry, health *HealthServer) *Server {
	defaults := DefaultConfig()
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = defaults.MetricsPath
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if health == nil {
		health = NewHealthServer(nil, nil, 0)
	}

	s := &Server{
		config:   cfg,
		registry: reg,
		health:   health,
		logger:   log.WithComponent("http"),
	}
	s.router = s.setupRouter()
	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Method(http.MethodGet, s.config.MetricsPath, metrics.Handler(s.registry))
	r.Get("/health", s.health.healthHandler)
	r.Get("/ready", s.health.readyHandler)
	r.Get("/status", s.health.statusHandler)
	r.Get("/", s.handleIndex)

	return r
}

// loggingMiddleware logs every request at debug level.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("remote_addr", r.RemoteAddr).
				Msg("http request")
		}()

		next.ServeHTTP(ww, r)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, `<html>
<head><title>Airflow Exporter</title></head>
<body>
<h1>Airflow Exporter</h1>
<p><a href="%s">Metrics</a></p>
</body>
</html>
`, s.config.MetricsPath)
}

// ListenAndServe serves until the server is shut down. It returns nil
// after a clean Shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info().
		Str("addr", s.httpServer.Addr).
		Str("metrics_path", s.config.MetricsPath).
		Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

// Handler returns the router for embedding in other servers and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
