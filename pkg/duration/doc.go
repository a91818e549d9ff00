// Package duration selects how elapsed time since a stored timestamp is
// computed inside the Airflow metadata database.
//
// Backends disagree on time arithmetic. SQLite has julianday, MySQL has
// TIMESTAMPDIFF and PostgreSQL subtracts timestamps into an interval. A
// Strategy carries both the SQL expression and the Unit of what it returns,
// so callers convert with Value.Seconds and never branch on the driver again.
package duration
