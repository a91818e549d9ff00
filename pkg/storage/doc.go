/*
Package storage provides read-only access to the Airflow metadata database.

The exporter never writes to the database. It reads three things on every
scrape and hands the rows to the collector:

	┌──────────────────── METADATA DATABASE ───────────────────┐
	│                                                            │
	│  task_instance ──group by (dag_id, task_id, state)──┐     │
	│                                                      ├─ dag.owners
	│  dag_stats ─────(dag_id, state, count)──────────────┘     │
	│                                                            │
	│  dag_run ───────state = 'running', SUM(elapsed)           │
	│                  elapsed = duration.Select(driver).Expr    │
	└────────────────────────────────────────────────────────────┘

# Sessions

Each query runs in its own session obtained through SQLStore.WithSession:

  - Begin: one transaction from the shared *sql.DB pool
  - Commit: when the callback returns nil
  - Rollback: when the callback returns an error or panics
  - Release: exactly once, on every path

The callback's error is returned unchanged. Begin and commit failures are
wrapped with %w so errors.Is still matches the driver error. There is no
retry; a failed query fails the scrape.

# Drivers

The binary registers four database/sql drivers:

	sqlite    modernc.org/sqlite        julianday arithmetic, seconds
	mysql     go-sql-driver/mysql       TIMESTAMPDIFF, seconds
	postgres  lib/pq                    NOW() - start_date, interval
	pgx       jackc/pgx/v5/stdlib       NOW() - start_date, interval

The pool is sized conservatively for a monitoring client (see Config), and
*sql.DB is safe for concurrent scrapes.

# Usage

	store, err := storage.Open(storage.Config{
		Driver:       "postgres",
		DSN:          "postgres://airflow@db/airflow?sslmode=disable",
		MaxOpenConns: 3,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	rows, err := store.TaskStates(ctx)
*/
package storage
