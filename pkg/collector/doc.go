/*
Package collector turns the Airflow metadata database into Prometheus gauges.

A Collector reads from a Source (normally a storage.Store) and builds three
gauge families on every call to Collect:

	airflow_task_status{dag_id, task_id, owner, status}
	airflow_dag_status{dag_id, owner, status}
	airflow_dag_run_duration{dag_id, run_id}

Nothing is cached between calls. A pass either returns all three families or
an error; partial snapshots are never produced. Task instances without a
state are reported with status "none". Running DAG runs without a start
date are skipped.

PrometheusCollector adapts a Collector to prometheus.Collector:

	store, _ := storage.Open(cfg)
	c := collector.New(store, collector.WithParallel(true))
	reg, _ := metrics.NewRegistry(collector.NewPrometheusCollector(c, 30*time.Second, health))
	http.Handle("/metrics", metrics.Handler(reg))

The adapter bounds each pass with a timeout. A failed pass reaches the
registry as an invalid metric, so the handler answers 500.
*/
package collector
