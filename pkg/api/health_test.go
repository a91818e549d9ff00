package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cuemby/airflow-exporter/pkg/metrics"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err   error
	calls int
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.calls++
	return f.err
}

func newTestHealthServer(store Pinger) (*HealthServer, *metrics.HealthChecker) {
	checker := metrics.NewHealthChecker(clockwork.NewFakeClock(), metrics.ComponentStore)
	checker.SetVersion("1.2.0")
	return NewHealthServer(store, checker, time.Second), checker
}

// TestHealthHandler tests the /health liveness endpoint
func TestHealthHandler(t *testing.T) {
	hs, checker := newTestHealthServer(&fakePinger{})
	// Liveness does not depend on the store.
	checker.UpdateComponent(metrics.ComponentStore, false, "connection refused")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	hs.healthHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "alive", response["status"])
	assert.Equal(t, "1.2.0", response["version"])
	assert.NotEmpty(t, response["uptime"])
}

// TestReadyHandler tests the /ready endpoint against the store ping result
func TestReadyHandler(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		expectedStatus int
		expectedState  string
		expectedStore  string
	}{
		{
			name:           "store reachable",
			expectedStatus: http.StatusOK,
			expectedState:  "ready",
			expectedStore:  "ready",
		},
		{
			name:           "store unreachable",
			pingErr:        errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"),
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "not_ready",
			expectedStore:  "not ready: dial tcp 10.0.0.5:5432: connect: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakePinger{err: tt.pingErr}
			hs, checker := newTestHealthServer(store)

			req := httptest.NewRequest(http.MethodGet, "/ready", nil)
			w := httptest.NewRecorder()

			hs.readyHandler(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, 1, store.calls)

			var response metrics.HealthStatus
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.expectedState, response.Status)
			assert.Equal(t, tt.expectedStore, response.Components[metrics.ComponentStore])

			comp, ok := checker.Component(metrics.ComponentStore)
			require.True(t, ok)
			assert.Equal(t, tt.pingErr == nil, comp.Healthy)
		})
	}
}

// TestReadyHandlerWithoutStore tests readiness before any pass has run
func TestReadyHandlerWithoutStore(t *testing.T) {
	hs, checker := newTestHealthServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()
	hs.readyHandler(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response metrics.HealthStatus
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "not registered", response.Components[metrics.ComponentStore])

	// A successful pass makes the exporter ready.
	checker.UpdateComponent(metrics.ComponentStore, true, "")
	w = httptest.NewRecorder()
	hs.readyHandler(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

// TestStatusHandler tests the component summary endpoint
func TestStatusHandler(t *testing.T) {
	hs, checker := newTestHealthServer(nil)
	checker.UpdateComponent(metrics.ComponentStore, false, "too many connections")

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	hs.statusHandler(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response metrics.HealthStatus
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "unhealthy", response.Status)
	assert.Equal(t, "unhealthy: too many connections", response.Components[metrics.ComponentStore])
	assert.Equal(t, "1.2.0", response.Version)
}

// TestNewHealthServerDefaults tests that a nil checker gets a default one
func TestNewHealthServerDefaults(t *testing.T) {
	hs := NewHealthServer(nil, nil, 0)

	assert.NotNil(t, hs.checker)
	assert.Equal(t, 5*time.Second, hs.pingTimeout)
}
