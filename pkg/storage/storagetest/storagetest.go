// Package storagetest builds throwaway SQLite metadata databases with the
// subset of the Airflow schema the exporter reads.
package storagetest

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/cuemby/airflow-exporter/pkg/storage"
	"github.com/stretchr/testify/require"
)

// Schema is the minimal Airflow schema used by the queries.
const Schema = `
CREATE TABLE dag (
	dag_id VARCHAR(250) PRIMARY KEY,
	owners VARCHAR(2000)
);
CREATE TABLE task_instance (
	task_id VARCHAR(250) NOT NULL,
	dag_id VARCHAR(250) NOT NULL,
	run_id VARCHAR(250) NOT NULL,
	state VARCHAR(20)
);
CREATE TABLE dag_stats (
	dag_id VARCHAR(250) NOT NULL,
	state VARCHAR(50) NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (dag_id, state)
);
CREATE TABLE dag_run (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	dag_id VARCHAR(250) NOT NULL,
	run_id VARCHAR(250) NOT NULL,
	state VARCHAR(50),
	start_date VARCHAR(32)
);
`

// NewSQLite opens a file-backed SQLite store in a temp dir and creates the
// schema. The store is closed when the test ends.
func NewSQLite(t testing.TB) *storage.SQLStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "airflow.db")
	store, err := storage.Open(storage.Config{Driver: "sqlite", DSN: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.DB().Exec(Schema)
	require.NoError(t, err)
	return store
}

// AddDag inserts a dag row.
func AddDag(t testing.TB, db *sql.DB, dagID, owners string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO dag (dag_id, owners) VALUES (?, ?)`, dagID, owners)
	require.NoError(t, err)
}

// AddTaskInstances inserts n task instances. A nil state stores NULL.
func AddTaskInstances(t testing.TB, db *sql.DB, dagID, taskID string, state *string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		var s any
		if state != nil {
			s = *state
		}
		_, err := db.Exec(
			`INSERT INTO task_instance (task_id, dag_id, run_id, state) VALUES (?, ?, ?, ?)`,
			taskID, dagID, fmt.Sprintf("run_%d", i), s,
		)
		require.NoError(t, err)
	}
}

// SetDagStat upserts a dag_stats row.
func SetDagStat(t testing.TB, db *sql.DB, dagID, state string, count int) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO dag_stats (dag_id, state, count) VALUES (?, ?, ?)
		 ON CONFLICT(dag_id, state) DO UPDATE SET count = excluded.count`,
		dagID, state, count,
	)
	require.NoError(t, err)
}

// AddDagRun inserts a dag_run that started startedAgo before the store's
// current time.
func AddDagRun(t testing.TB, db *sql.DB, dagID, runID, state string, startedAgo time.Duration) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO dag_run (dag_id, run_id, state, start_date) VALUES (?, ?, ?, datetime('now', ?))`,
		dagID, runID, state, fmt.Sprintf("-%d seconds", int(startedAgo.Seconds())),
	)
	require.NoError(t, err)
}

// AddUnstartedDagRun inserts a dag_run with a NULL start_date.
func AddUnstartedDagRun(t testing.TB, db *sql.DB, dagID, runID, state string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO dag_run (dag_id, run_id, state, start_date) VALUES (?, ?, ?, NULL)`,
		dagID, runID, state,
	)
	require.NoError(t, err)
}

// Ptr returns a pointer to s.
func Ptr(s string) *string {
	return &s
}
