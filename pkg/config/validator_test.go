package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Log:       LogConfig{Level: "info"},
		Store:     StoreConfig{Driver: "postgres", DSN: "postgres://localhost/airflow", MaxOpenConns: 3, MaxIdleConns: 1},
		Server:    ServerConfig{ListenAddress: ":9112", MetricsPath: "/metrics"},
		Collector: CollectorConfig{Timeout: 30 * time.Second},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "bad log level", modify: func(c *Config) { c.Log.Level = "verbose" }, field: "log.level"},
		{name: "missing dsn", modify: func(c *Config) { c.Store.DSN = "" }, field: "store.dsn"},
		{name: "unknown driver", modify: func(c *Config) { c.Store.Driver = "oracle" }, field: "store.driver"},
		{name: "empty driver", modify: func(c *Config) { c.Store.Driver = "" }, field: "store.driver"},
		{name: "negative open conns", modify: func(c *Config) { c.Store.MaxOpenConns = -1 }, field: "store.max_open_conns"},
		{name: "negative idle conns", modify: func(c *Config) { c.Store.MaxIdleConns = -1 }, field: "store.max_idle_conns"},
		{name: "empty listen address", modify: func(c *Config) { c.Server.ListenAddress = "" }, field: "server.listen_address"},
		{name: "relative metrics path", modify: func(c *Config) { c.Server.MetricsPath = "metrics" }, field: "server.metrics_path"},
		{name: "zero timeout", modify: func(c *Config) { c.Collector.Timeout = 0 }, field: "collector.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Store.DSN = ""
	cfg.Store.Driver = "oracle"
	cfg.Collector.Timeout = -time.Second

	err := Validate(cfg)
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 3)
	assert.Contains(t, err.Error(), "store.dsn: is required")
	assert.Contains(t, err.Error(), "store.driver: unknown driver (got: oracle)")
	assert.Contains(t, err.Error(), "collector.timeout: must be positive")
}

func TestValidate_AllSupportedDrivers(t *testing.T) {
	for _, driver := range []string{"sqlite", "mysql", "postgres", "pgx"} {
		cfg := validConfig()
		cfg.Store.Driver = driver
		assert.NoError(t, Validate(cfg), driver)
	}
}
