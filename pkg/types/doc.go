/*
Package types defines the rows read from the Airflow metadata database.

Rows are rebuilt on every collection pass and dropped once they have been
turned into gauge samples. None of them is persisted or mutated.

	TaskStateRow       task_instance grouped by (dag_id, task_id, state) + dag.owners
	DagStateRow        dag_stats (dag_id, state, count)              + dag.owners
	DagRunDurationRow  running dag_run (dag_id, run_id, elapsed duration)

A task instance that has never been scheduled has a NULL state. TaskStateRow
keeps that as a nil State, and StateLabel maps it to the "none" label value.
*/
package types
