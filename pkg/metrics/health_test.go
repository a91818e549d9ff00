package metrics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func newTestChecker() (*HealthChecker, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClock()
	return NewHealthChecker(clock, "store"), clock
}

func TestUpdateComponent(t *testing.T) {
	hc, _ := newTestChecker()

	hc.UpdateComponent("store", true, "ok")
	hc.UpdateComponent("store", false, "connection refused")

	comp, ok := hc.Component("store")
	if !ok {
		t.Fatal("store component not registered")
	}
	if comp.Healthy {
		t.Error("component should be unhealthy after update")
	}
	if comp.Message != "connection refused" {
		t.Errorf("expected message 'connection refused', got '%s'", comp.Message)
	}
}

func TestHealth_AllHealthy(t *testing.T) {
	hc, clock := newTestChecker()
	hc.SetVersion("1.0.0")
	hc.UpdateComponent("store", true, "")
	hc.UpdateComponent("collector", true, "")
	clock.Advance(90 * time.Second)

	health := hc.Health()

	if health.Status != "healthy" {
		t.Errorf("expected status 'healthy', got '%s'", health.Status)
	}
	if len(health.Components) != 2 {
		t.Errorf("expected 2 components, got %d", len(health.Components))
	}
	if health.Version != "1.0.0" {
		t.Errorf("expected version '1.0.0', got '%s'", health.Version)
	}
	if health.Uptime != "1m30s" {
		t.Errorf("expected uptime '1m30s', got '%s'", health.Uptime)
	}
}

func TestHealth_OneUnhealthy(t *testing.T) {
	hc, _ := newTestChecker()
	hc.UpdateComponent("collector", true, "")
	hc.UpdateComponent("store", false, "not connected")

	health := hc.Health()

	if health.Status != "unhealthy" {
		t.Errorf("expected status 'unhealthy', got '%s'", health.Status)
	}
	if health.Components["store"] != "unhealthy: not connected" {
		t.Errorf("unexpected store status: %s", health.Components["store"])
	}
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*HealthChecker)
		status string
	}{
		{
			name:   "critical component missing",
			setup:  func(hc *HealthChecker) { hc.UpdateComponent("collector", true, "") },
			status: "not_ready",
		},
		{
			name:   "critical component unhealthy",
			setup:  func(hc *HealthChecker) { hc.UpdateComponent("store", false, "timeout") },
			status: "not_ready",
		},
		{
			name:   "critical component healthy",
			setup:  func(hc *HealthChecker) { hc.UpdateComponent("store", true, "") },
			status: "ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc, _ := newTestChecker()
			tt.setup(hc)

			readiness := hc.Readiness()
			if readiness.Status != tt.status {
				t.Errorf("expected status '%s', got '%s'", tt.status, readiness.Status)
			}
			if tt.status != "ready" && readiness.Message == "" {
				t.Error("expected message explaining why not ready")
			}
		})
	}
}

func TestHealthHandler(t *testing.T) {
	hc, _ := newTestChecker()
	hc.SetVersion("test")
	hc.UpdateComponent("store", true, "")

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	hc.HealthHandler()(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var health HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&health); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if health.Status != "healthy" {
		t.Errorf("expected healthy status, got %s", health.Status)
	}
	if health.Version != "test" {
		t.Errorf("expected version 'test', got %s", health.Version)
	}
}

func TestHealthHandler_Unhealthy(t *testing.T) {
	hc, _ := newTestChecker()
	hc.UpdateComponent("store", false, "broken")

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	hc.HealthHandler()(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
}

func TestReadyHandler_NotReady(t *testing.T) {
	hc, _ := newTestChecker()

	req := httptest.NewRequest("GET", "/ready", nil)
	w := httptest.NewRecorder()
	hc.ReadyHandler()(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}

	var readiness HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&readiness); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if readiness.Components["store"] != "not registered" {
		t.Errorf("unexpected store readiness: %s", readiness.Components["store"])
	}
}

func TestLivenessHandler(t *testing.T) {
	hc, clock := newTestChecker()
	clock.Advance(time.Minute)

	req := httptest.NewRequest("GET", "/live", nil)
	w := httptest.NewRecorder()
	hc.LivenessHandler()(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["status"] != "alive" {
		t.Errorf("expected status 'alive', got '%s'", response["status"])
	}
	if response["uptime"] != "1m0s" {
		t.Errorf("expected uptime '1m0s', got '%s'", response["uptime"])
	}
}
