package api

import (
	"context"
	"net/http"
	"time"

	"github.com/cuemby/airflow-exporter/pkg/metrics"
)

// Pinger checks that the metadata database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthServer serves the health check endpoints
type HealthServer struct {
	store       Pinger
	checker     *metrics.HealthChecker
	pingTimeout time.Duration
}

// NewHealthServer creates the health endpoints. store may be nil, in which
// case readiness is reported from the last collection pass alone.
func NewHealthServer(store Pinger, checker *metrics.HealthChecker, pingTimeout time.Duration) *HealthServer {
	if checker == nil {
		checker = metrics.NewHealthChecker(nil, metrics.ComponentStore)
	}
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	return &HealthServer{
		store:       store,
		checker:     checker,
		pingTimeout: pingTimeout,
	}
}

// healthHandler implements the /health endpoint
// This is a liveness check and returns 200 while the process is up
func (hs *HealthServer) healthHandler(w http.ResponseWriter, r *http.Request) {
	hs.checker.LivenessHandler()(w, r)
}

// statusHandler reports every tracked component
func (hs *HealthServer) statusHandler(w http.ResponseWriter, r *http.Request) {
	hs.checker.HealthHandler()(w, r)
}

// readyHandler implements the /ready endpoint
// The store is pinged on every request so an unreachable database shows up
// before the next scrape does.
func (hs *HealthServer) readyHandler(w http.ResponseWriter, r *http.Request) {
	if hs.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), hs.pingTimeout)
		defer cancel()

		if err := hs.store.Ping(ctx); err != nil {
			hs.checker.UpdateComponent(metrics.ComponentStore, false, err.Error())
		} else {
			hs.checker.UpdateComponent(metrics.ComponentStore, true, "")
		}
	}
	hs.checker.ReadyHandler()(w, r)
}
