package main

import (
	"fmt"
	"os"

	"github.com/cuemby/airflow-exporter/pkg/config"
	"github.com/cuemby/airflow-exporter/pkg/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var (
	v          = viper.New()
	configFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "airflow-exporter",
	Short: "Prometheus exporter for Apache Airflow",
	Long: `airflow-exporter reads task and DAG run state from the Airflow
metadata database and exposes it as Prometheus gauges.

Every scrape is an independent snapshot. The exporter never writes to
the database.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Set version template
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"airflow-exporter version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default ./airflow-exporter.yaml or /etc/airflow-exporter/airflow-exporter.yaml)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "Log in JSON format")
	flags.String("store-driver", "postgres", "Metadata database driver (postgres, pgx, mysql, sqlite)")
	flags.String("store-dsn", "", "Metadata database connection string")
	flags.Bool("parallel", false, "Run the state queries of a pass concurrently")
	flags.Duration("timeout", 0, "Deadline of one collection pass (default 30s)")

	bindFlag("log.level", "log-level")
	bindFlag("log.json", "log-json")
	bindFlag("store.driver", "store-driver")
	bindFlag("store.dsn", "store-dsn")
	bindFlag("collector.parallel", "parallel")
	bindFlag("collector.timeout", "timeout")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(collectCmd)
}

func bindFlag(key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// loadConfig loads the configuration and initializes logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewLoaderWithViper(v).WithConfigFile(configFile).Load()
	if err != nil {
		return nil, err
	}
	log.Init(cfg.LoggerConfig())
	return cfg, nil
}
