package collector

import (
	"context"
	"fmt"

	"github.com/cuemby/airflow-exporter/pkg/log"
	"github.com/cuemby/airflow-exporter/pkg/metrics"
	"github.com/cuemby/airflow-exporter/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Metric names and label schemas. They are consumed by dashboards and alerts
// and must not change.
const (
	TaskStatusName     = "airflow_task_status"
	DagStatusName      = "airflow_dag_status"
	DagRunDurationName = "airflow_dag_run_duration"

	taskStatusHelp     = "Shows the number of task starts with this status"
	dagStatusHelp      = "Shows the number of dag starts with this status"
	dagRunDurationHelp = "Duration of currently running dag_runs in seconds"
)

var (
	TaskStatusLabels     = []string{"dag_id", "task_id", "owner", "status"}
	DagStatusLabels      = []string{"dag_id", "owner", "status"}
	DagRunDurationLabels = []string{"dag_id", "run_id"}
)

// Query names used in the scrape error counter.
const (
	queryTaskStatus     = "task_status"
	queryDagStatus      = "dag_status"
	queryDagRunDuration = "dag_run_duration"
)

// Source is the read surface over the metadata database. storage.Store
// satisfies it.
type Source interface {
	TaskStates(ctx context.Context) ([]types.TaskStateRow, error)
	DagStates(ctx context.Context) ([]types.DagStateRow, error)
	RunningDagRuns(ctx context.Context) ([]types.DagRunDurationRow, error)
}

// Collector turns one read of the metadata database into gauge families.
// It keeps no state between passes.
type Collector struct {
	source   Source
	parallel bool
	logger   zerolog.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithParallel runs the three reads concurrently. Output is unchanged.
func WithParallel(parallel bool) Option {
	return func(c *Collector) {
		c.parallel = parallel
	}
}

// New creates a Collector reading from source.
func New(source Source, opts ...Option) *Collector {
	c := &Collector{
		source: source,
		logger: log.WithComponent("collector"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect runs one collection pass and returns exactly three families in
// order: task status, DAG status, DAG run duration. A family with no rows
// has no samples. If any read fails, no family is returned and the error
// from the store is returned as is.
func (c *Collector) Collect(ctx context.Context) ([]metrics.Family, error) {
	logger := log.WithPassID(c.logger, uuid.NewString())

	var (
		tasks []types.TaskStateRow
		dags  []types.DagStateRow
		runs  []types.DagRunDurationRow
	)

	if c.parallel {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			tasks, err = read(gctx, logger, queryTaskStatus, c.source.TaskStates)
			return err
		})
		g.Go(func() (err error) {
			dags, err = read(gctx, logger, queryDagStatus, c.source.DagStates)
			return err
		})
		g.Go(func() (err error) {
			runs, err = read(gctx, logger, queryDagRunDuration, c.source.RunningDagRuns)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		var err error
		if tasks, err = read(ctx, logger, queryTaskStatus, c.source.TaskStates); err != nil {
			return nil, err
		}
		if dags, err = read(ctx, logger, queryDagStatus, c.source.DagStates); err != nil {
			return nil, err
		}
		if runs, err = read(ctx, logger, queryDagRunDuration, c.source.RunningDagRuns); err != nil {
			return nil, err
		}
	}

	taskFamily, err := TaskStatusFamily(tasks)
	if err != nil {
		return nil, err
	}
	dagFamily, err := DagStatusFamily(dags)
	if err != nil {
		return nil, err
	}
	durationFamily, err := DagRunDurationFamily(runs)
	if err != nil {
		metrics.ScrapeErrors.WithLabelValues(queryDagRunDuration).Inc()
		logger.Error().Err(err).Str("query", queryDagRunDuration).Msg("failed to read run duration")
		return nil, err
	}

	return []metrics.Family{*taskFamily, *dagFamily, *durationFamily}, nil
}

func read[T any](ctx context.Context, logger zerolog.Logger, query string, fn func(context.Context) ([]T, error)) ([]T, error) {
	rows, err := fn(ctx)
	if err != nil {
		metrics.ScrapeErrors.WithLabelValues(query).Inc()
		logger.Error().Err(err).Str("query", query).Msg("collection pass failed")
		return nil, err
	}
	logger.Debug().Str("query", query).Int("rows", len(rows)).Msg("query complete")
	return rows, nil
}

// NewTaskStatusFamily returns an empty task status family.
func NewTaskStatusFamily() *metrics.Family {
	return metrics.NewGaugeFamily(TaskStatusName, taskStatusHelp, TaskStatusLabels...)
}

// NewDagStatusFamily returns an empty DAG status family.
func NewDagStatusFamily() *metrics.Family {
	return metrics.NewGaugeFamily(DagStatusName, dagStatusHelp, DagStatusLabels...)
}

// NewDagRunDurationFamily returns an empty DAG run duration family.
func NewDagRunDurationFamily() *metrics.Family {
	return metrics.NewGaugeFamily(DagRunDurationName, dagRunDurationHelp, DagRunDurationLabels...)
}

// TaskStatusFamily maps task state rows to samples. A NULL state is
// reported as "none".
func TaskStatusFamily(rows []types.TaskStateRow) (*metrics.Family, error) {
	f := NewTaskStatusFamily()
	for _, r := range rows {
		if err := f.Add(float64(r.Count), r.DagID, r.TaskID, r.Owners, r.StateLabel()); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// DagStatusFamily maps DAG state rows to samples.
func DagStatusFamily(rows []types.DagStateRow) (*metrics.Family, error) {
	f := NewDagStatusFamily()
	for _, r := range rows {
		if err := f.Add(float64(r.Count), r.DagID, r.Owners, r.State); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// DagRunDurationFamily maps running DAG runs to elapsed seconds. Runs
// without a start timestamp have no duration and are skipped.
func DagRunDurationFamily(rows []types.DagRunDurationRow) (*metrics.Family, error) {
	f := NewDagRunDurationFamily()
	for _, r := range rows {
		if !r.Duration.Valid() {
			continue
		}
		seconds, err := r.Duration.Seconds()
		if err != nil {
			return nil, fmt.Errorf("dag run %s/%s: %w", r.DagID, r.RunID, err)
		}
		if err := f.Add(seconds, r.DagID, r.RunID); err != nil {
			return nil, err
		}
	}
	return f, nil
}
