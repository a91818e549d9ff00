/*
Package api serves the exporter over HTTP.

A chi router exposes the Prometheus registry together with the health
endpoints:

	┌──────────────────── PROMETHEUS / KUBELET ──────────────────┐
	│                                                              │
	│   GET /metrics        GET /health      GET /ready           │
	└─────────┬──────────────────┬───────────────┬───────────────┘
	          │                  │               │
	┌─────────▼──────────────────▼───────────────▼───────────────┐
	│                    Server (chi router)                       │
	│  - RequestID, RealIP, request logging, Recoverer            │
	│                                                              │
	│  metrics.Handler(reg)   HealthServer                         │
	│   - one collection       - /health: liveness, version       │
	│     pass per scrape      - /ready: pings the store          │
	│   - 500 on failure       - /status: component summary       │
	└─────────┬─────────────────────────────────┬─────────────────┘
	          │                                 │
	┌─────────▼─────────────────────────────────▼─────────────────┐
	│                Airflow metadata database                     │
	└──────────────────────────────────────────────────────────────┘

# Endpoints

The metrics path defaults to /metrics and is configurable. /ready answers
503 while the store cannot be pinged, so an orchestrator can hold traffic
until the database is reachable. /health never consults the store.

# Usage

	reg, _ := metrics.NewRegistry(collector.NewPrometheusCollector(c, timeout, checker))
	srv := api.NewServer(api.Config{
		ListenAddress: ":9112",
		MetricsPath:   "/metrics",
	}, reg, api.NewHealthServer(store, checker, 5*time.Second))

	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Errorf("server failed", err)
		}
	}()
	...
	_ = srv.Shutdown(ctx)
*/
package api
