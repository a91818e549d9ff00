/*
Package metrics provides the Prometheus plumbing of the exporter.

It holds the library-neutral Family value that the collector builds on every
pass, the exporter's own self metrics, the registry and HTTP handler, a small
timer helper and the health checker behind /health and /ready.

# Architecture

	┌──────────────────── METRICS SYSTEM ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │          Dedicated Registry                 │          │
	│  │  - NewRegistry(collectors...)               │          │
	│  │  - Go runtime + process collectors          │          │
	│  │  - Self metrics                             │          │
	│  │  - Airflow collector (pkg/collector)        │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │              Family                         │          │
	│  │  - name, help, label schema, samples        │          │
	│  │  - ConstMetrics(): gauge const metrics      │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │          HTTP Metrics Endpoint              │          │
	│  │  - Handler(reg): promhttp.HandlerFor        │          │
	│  │  - HTTPErrorOnError: failed pass -> 500     │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Metrics Catalog

Airflow metrics (built per scrape by pkg/collector):

airflow_task_status{dag_id, task_id, owner, status}:
  - Type: Gauge
  - Description: Number of task instances per state; status "none" when unset

airflow_dag_status{dag_id, owner, status}:
  - Type: Gauge
  - Description: Number of DAG runs per state, from dag_stats

airflow_dag_run_duration{dag_id, run_id}:
  - Type: Gauge
  - Description: Seconds elapsed since a running DAG run started

Self metrics:

airflow_exporter_scrape_duration_seconds:
  - Type: Histogram
  - Description: Duration of a collection pass

airflow_exporter_scrape_errors_total{query}:
  - Type: Counter
  - Description: Failed passes by the query that failed

airflow_exporter_last_scrape_success:
  - Type: Gauge
  - Description: 1 when the last pass succeeded, 0 otherwise

airflow_exporter_build_info{version, commit, goversion}:
  - Type: Gauge
  - Description: Always 1

# Usage

	reg, err := metrics.NewRegistry(collector.NewPrometheusCollector(c, timeout, health))
	if err != nil {
		return err
	}
	http.Handle("/metrics", metrics.Handler(reg))

# Health

HealthChecker records per-component health. The store is the only critical
component: /ready answers 503 until a ping or a collection pass succeeds.
*/
package metrics
