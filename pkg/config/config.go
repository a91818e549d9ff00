package config

import (
	"os"
	"time"

	"github.com/cuemby/airflow-exporter/pkg/log"
	"github.com/cuemby/airflow-exporter/pkg/storage"
)

// Config is the exporter configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Store     StoreConfig     `mapstructure:"store" yaml:"store"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Collector CollectorConfig `mapstructure:"collector" yaml:"collector"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	JSON  bool   `mapstructure:"json" yaml:"json"`
}

// StoreConfig configures the connection to the Airflow metadata database.
type StoreConfig struct {
	// Driver is the database/sql driver name. It also selects how run
	// durations are computed.
	Driver          string        `mapstructure:"driver" yaml:"driver"`
	DSN             string        `mapstructure:"dsn" yaml:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	ListenAddress string `mapstructure:"listen_address" yaml:"listen_address"`
	MetricsPath   string `mapstructure:"metrics_path" yaml:"metrics_path"`
}

// CollectorConfig configures collection passes.
type CollectorConfig struct {
	Parallel bool          `mapstructure:"parallel" yaml:"parallel"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// StorageConfig converts the store section for storage.Open.
func (c *Config) StorageConfig() storage.Config {
	return storage.Config{
		Driver:          c.Store.Driver,
		DSN:             c.Store.DSN,
		MaxOpenConns:    c.Store.MaxOpenConns,
		MaxIdleConns:    c.Store.MaxIdleConns,
		ConnMaxLifetime: c.Store.ConnMaxLifetime,
	}
}

// LoggerConfig converts the log section for log.Init. The level must have
// been validated.
func (c *Config) LoggerConfig() log.Config {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	return log.Config{
		Level:      level,
		JSONOutput: c.Log.JSON,
		Output:     os.Stderr,
	}
}
