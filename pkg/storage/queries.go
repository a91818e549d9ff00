package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cuemby/airflow-exporter/pkg/duration"
	"github.com/cuemby/airflow-exporter/pkg/types"
)

const taskStatesQuery = `
SELECT ti.dag_id, ti.task_id, ti.state, ti.cnt, dag.owners
FROM (
	SELECT dag_id, task_id, state, COUNT(dag_id) AS cnt
	FROM task_instance
	GROUP BY dag_id, task_id, state
) ti
JOIN dag ON dag.dag_id = ti.dag_id`

const dagStatesQuery = `
SELECT dag_stats.dag_id, dag_stats.state, dag_stats.count, dag.owners
FROM dag_stats
JOIN dag ON dag.dag_id = dag_stats.dag_id`

func runningDagRunsQuery(strategy duration.Strategy) string {
	return fmt.Sprintf(`
SELECT dag_id, run_id, SUM(%s) AS duration
FROM dag_run
WHERE state = '%s'
GROUP BY dag_id, run_id`, strategy.Expr("start_date"), types.DagRunStateRunning)
}

// TaskStates counts task instances per (dag_id, task_id, state), joined to
// the DAG owners. Order is unspecified.
func (s *SQLStore) TaskStates(ctx context.Context) ([]types.TaskStateRow, error) {
	var out []types.TaskStateRow
	err := s.WithSession(ctx, func(ctx context.Context, sess Session) error {
		rows, err := sess.QueryContext(ctx, taskStatesQuery)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				row    types.TaskStateRow
				state  sql.NullString
				owners sql.NullString
			)
			if err := rows.Scan(&row.DagID, &row.TaskID, &state, &row.Count, &owners); err != nil {
				return err
			}
			if state.Valid {
				row.State = &state.String
			}
			row.Owners = owners.String
			out = append(out, row)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DagStates reads the per-DAG state counts maintained by the scheduler in
// dag_stats, joined to the DAG owners.
func (s *SQLStore) DagStates(ctx context.Context) ([]types.DagStateRow, error) {
	var out []types.DagStateRow
	err := s.WithSession(ctx, func(ctx context.Context, sess Session) error {
		rows, err := sess.QueryContext(ctx, dagStatesQuery)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				row    types.DagStateRow
				owners sql.NullString
			)
			if err := rows.Scan(&row.DagID, &row.State, &row.Count, &owners); err != nil {
				return err
			}
			row.Owners = owners.String
			out = append(out, row)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RunningDagRuns returns one row per running DAG run with the elapsed time
// since its start, computed by the store.
func (s *SQLStore) RunningDagRuns(ctx context.Context) ([]types.DagRunDurationRow, error) {
	var out []types.DagRunDurationRow
	err := s.WithSession(ctx, func(ctx context.Context, sess Session) error {
		rows, err := sess.QueryContext(ctx, s.runningQuery)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				row types.DagRunDurationRow
				raw any
			)
			if err := rows.Scan(&row.DagID, &row.RunID, &raw); err != nil {
				return err
			}
			row.Duration = s.strategy.Value(raw)
			out = append(out, row)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
