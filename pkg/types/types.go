package types

import (
	"github.com/cuemby/airflow-exporter/pkg/duration"
)

// TaskState is the state column of a task instance.
type TaskState string

const (
	TaskStateNone            TaskState = "none"
	TaskStateScheduled       TaskState = "scheduled"
	TaskStateQueued          TaskState = "queued"
	TaskStateRunning         TaskState = "running"
	TaskStateSuccess         TaskState = "success"
	TaskStateFailed          TaskState = "failed"
	TaskStateUpForRetry      TaskState = "up_for_retry"
	TaskStateUpForReschedule TaskState = "up_for_reschedule"
	TaskStateUpstreamFailed  TaskState = "upstream_failed"
	TaskStateSkipped         TaskState = "skipped"
)

// DagRunState is the state column of a DAG run.
type DagRunState string

const (
	DagRunStateQueued  DagRunState = "queued"
	DagRunStateRunning DagRunState = "running"
	DagRunStateSuccess DagRunState = "success"
	DagRunStateFailed  DagRunState = "failed"
)

// TaskStateRow is one (dag_id, task_id, state) group of task instances.
type TaskStateRow struct {
	DagID  string
	TaskID string
	// State is nil when the task instance has no state yet.
	State  *string
	Owners string
	Count  int64
}

// StateLabel returns the state, or "none" when it is absent.
func (r TaskStateRow) StateLabel() string {
	if r.State == nil || *r.State == "" {
		return string(TaskStateNone)
	}
	return *r.State
}

// DagStateRow is one pre-aggregated (dag_id, state) count.
type DagStateRow struct {
	DagID  string
	State  string
	Count  int64
	Owners string
}

// DagRunDurationRow is one currently running DAG run.
type DagRunDurationRow struct {
	DagID    string
	RunID    string
	Duration duration.Value
}
