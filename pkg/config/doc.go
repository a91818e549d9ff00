// Package config loads the exporter configuration from defaults, an
// optional YAML file, AIRFLOW_EXPORTER_* environment variables and CLI
// flags, in increasing order of precedence.
package config
