package main

import (
	"context"
	"fmt"
	"io"

	"github.com/cuemby/airflow-exporter/pkg/collector"
	"github.com/cuemby/airflow-exporter/pkg/log"
	"github.com/cuemby/airflow-exporter/pkg/metrics"
	"github.com/cuemby/airflow-exporter/pkg/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run one collection pass and print the result",
	Long: `Run a single collection pass against the metadata database and print
the metric families to stdout. Exits non-zero if the pass fails.

Examples:
  # Prometheus text format
  airflow-exporter collect --store-driver sqlite --store-dsn /opt/airflow/airflow.db

  # YAML, one document with every family
  airflow-exporter collect -o yaml`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringP("output", "o", "text", "Output format (text, yaml)")
}

func runCollect(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "text" && output != "yaml" {
		return fmt.Errorf("unknown output format %q (expected text or yaml)", output)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.StorageConfig())
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Errorf("Failed to close store", err)
		}
	}()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Collector.Timeout)
	defer cancel()

	c := collector.New(store, collector.WithParallel(cfg.Collector.Parallel))
	return writeFamilies(ctx, cmd.OutOrStdout(), output, c)
}

// writeFamilies runs one pass and writes it to w as Prometheus text or YAML.
func writeFamilies(ctx context.Context, w io.Writer, format string, c *collector.Collector) error {
	families, err := c.Collect(ctx)
	if err != nil {
		return fmt.Errorf("collection failed: %w", err)
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(families); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case "text":
		return writeText(w, families)
	default:
		return fmt.Errorf("unknown output format %q (expected text or yaml)", format)
	}
}

func writeText(w io.Writer, families []metrics.Family) error {
	snap := snapshot{}
	for i := range families {
		ms, err := families[i].ConstMetrics()
		if err != nil {
			return err
		}
		snap.descs = append(snap.descs, families[i].Desc())
		snap.metrics = append(snap.metrics, ms...)
	}

	reg := prometheus.NewRegistry()
	if err := reg.Register(snap); err != nil {
		return fmt.Errorf("failed to register snapshot: %w", err)
	}
	mfs, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather snapshot: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// snapshot replays already collected metrics.
type snapshot struct {
	descs   []*prometheus.Desc
	metrics []prometheus.Metric
}

func (s snapshot) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range s.descs {
		ch <- d
	}
}

func (s snapshot) Collect(ch chan<- prometheus.Metric) {
	for _, m := range s.metrics {
		ch <- m
	}
}
