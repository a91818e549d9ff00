package metrics

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/cuemby/airflow-exporter/pkg/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Exporter self metrics
	ScrapeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "airflow_exporter_scrape_duration_seconds",
			Help:    "Duration of a collection pass against the metadata database in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	ScrapeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airflow_exporter_scrape_errors_total",
			Help: "Total number of failed collection passes by query",
		},
		[]string{"query"},
	)

	LastScrapeSuccess = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "airflow_exporter_last_scrape_success",
			Help: "Whether the last collection pass succeeded (1 = success, 0 = failure)",
		},
	)
)

// NewBuildInfo returns a gauge fixed at 1 carrying build metadata as labels.
func NewBuildInfo(version, commit string) prometheus.Collector {
	g := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "airflow_exporter_build_info",
			Help: "Build information of the running exporter",
		},
		[]string{"version", "commit", "goversion"},
	)
	g.WithLabelValues(version, commit, runtime.Version()).Set(1)
	return g
}

// NewRegistry creates a registry holding the self metrics, the Go runtime
// and process collectors, plus any extra collectors.
func NewRegistry(extra ...prometheus.Collector) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()

	cs := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		ScrapeDuration,
		ScrapeErrors,
		LastScrapeSuccess,
	}
	cs = append(cs, extra...)

	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return reg, nil
}

// Handler returns the Prometheus HTTP handler for reg. A failed collection
// pass makes the handler answer 500 instead of serving partial data.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		ErrorLog:      promLogger{},
		ErrorHandling: promhttp.HTTPErrorOnError,
		Registry:      reg,
	})
}

type promLogger struct{}

func (promLogger) Println(v ...interface{}) {
	logger := log.WithComponent("promhttp")
	logger.Error().Msg(fmt.Sprint(v...))
}
