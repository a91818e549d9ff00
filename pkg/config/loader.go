package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g.
// AIRFLOW_EXPORTER_STORE_DSN for store.dsn.
const EnvPrefix = "AIRFLOW_EXPORTER"

// Loader handles configuration loading from multiple sources.
type Loader struct {
	v          *viper.Viper
	configFile string
	envPrefix  string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return NewLoaderWithViper(viper.New())
}

// NewLoaderWithViper creates a loader using an existing viper instance so
// that CLI flags bound to it take precedence.
func NewLoaderWithViper(v *viper.Viper) *Loader {
	return &Loader{
		v:         v,
		envPrefix: EnvPrefix,
	}
}

// WithConfigFile sets an explicit config file path.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// WithEnvPrefix sets the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// Viper returns the underlying viper instance for flag binding.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load reads and validates the configuration.
// Precedence (highest to lowest):
// 1. CLI flags (bound with viper.BindPFlag)
// 2. Environment variables (AIRFLOW_EXPORTER_*)
// 3. Config file (--config, or airflow-exporter.yaml in . or /etc/airflow-exporter)
// 4. Defaults
func (l *Loader) Load() (*Config, error) {
	SetDefaults(l.v)

	l.v.SetEnvPrefix(l.envPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	} else {
		l.v.SetConfigName("airflow-exporter")
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
		l.v.AddConfigPath("/etc/airflow-exporter")
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults registers every key with its default value. Keys without a
// default are invisible to AutomaticEnv during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.max_open_conns", 3)
	v.SetDefault("store.max_idle_conns", 1)
	v.SetDefault("store.conn_max_lifetime", "5m")

	v.SetDefault("server.listen_address", ":9112")
	v.SetDefault("server.metrics_path", "/metrics")

	v.SetDefault("collector.parallel", false)
	v.SetDefault("collector.timeout", "30s")
}
