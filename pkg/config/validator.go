package config

import (
	"fmt"
	"strings"

	"github.com/cuemby/airflow-exporter/pkg/log"
	"github.com/cuemby/airflow-exporter/pkg/storage"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation: %s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every section and returns ValidationErrors listing all
// invalid fields, or nil.
func Validate(cfg *Config) error {
	var errs ValidationErrors
	add := func(field string, value interface{}, msg string) {
		errs = append(errs, ValidationError{Field: field, Value: value, Message: msg})
	}

	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		add("log.level", cfg.Log.Level, "must be one of debug, info, warn, error")
	}

	if cfg.Store.DSN == "" {
		add("store.dsn", cfg.Store.DSN, "is required")
	}
	if !storage.KnownDriver(cfg.Store.Driver) {
		add("store.driver", cfg.Store.Driver, "unknown driver")
	}
	if cfg.Store.MaxOpenConns < 0 {
		add("store.max_open_conns", cfg.Store.MaxOpenConns, "must not be negative")
	}
	if cfg.Store.MaxIdleConns < 0 {
		add("store.max_idle_conns", cfg.Store.MaxIdleConns, "must not be negative")
	}

	if cfg.Server.ListenAddress == "" {
		add("server.listen_address", cfg.Server.ListenAddress, "is required")
	}
	if !strings.HasPrefix(cfg.Server.MetricsPath, "/") {
		add("server.metrics_path", cfg.Server.MetricsPath, "must start with /")
	}

	if cfg.Collector.Timeout <= 0 {
		add("collector.timeout", cfg.Collector.Timeout, "must be positive")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
