package storage

import (
	"context"
	"errors"
	"time"

	"github.com/cuemby/airflow-exporter/pkg/duration"
	"github.com/cuemby/airflow-exporter/pkg/types"
)

// ErrUnknownDriver is returned when no database/sql driver is registered
// under the configured name.
var ErrUnknownDriver = errors.New("unknown store driver")

// Store defines the read surface over the Airflow metadata database.
// Every method opens and closes its own session.
type Store interface {
	// TaskStates counts task instances per (dag_id, task_id, state).
	TaskStates(ctx context.Context) ([]types.TaskStateRow, error)
	// DagStates reads the pre-aggregated per-DAG state counts.
	DagStates(ctx context.Context) ([]types.DagStateRow, error)
	// RunningDagRuns reads the elapsed duration of every running DAG run.
	RunningDagRuns(ctx context.Context) ([]types.DagRunDurationRow, error)

	Ping(ctx context.Context) error
	Driver() string
	Strategy() duration.Strategy
	Close() error
}

// Config holds the connection settings of the metadata database.
type Config struct {
	// Driver is the database/sql driver name: sqlite, mysql, postgres or pgx.
	Driver string
	DSN    string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}
