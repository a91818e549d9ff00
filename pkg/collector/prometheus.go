package collector

import (
	"context"
	"time"

	"github.com/cuemby/airflow-exporter/pkg/log"
	"github.com/cuemby/airflow-exporter/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// PrometheusCollector exposes a Collector to a prometheus registry. Each
// registry Collect call runs one pass.
type PrometheusCollector struct {
	collector *Collector
	timeout   time.Duration
	health    *metrics.HealthChecker
	descs     []*prometheus.Desc
	logger    zerolog.Logger
}

var _ prometheus.Collector = (*PrometheusCollector)(nil)

// NewPrometheusCollector wraps c. A positive timeout bounds every pass.
// health may be nil.
func NewPrometheusCollector(c *Collector, timeout time.Duration, health *metrics.HealthChecker) *PrometheusCollector {
	return &PrometheusCollector{
		collector: c,
		timeout:   timeout,
		health:    health,
		descs: []*prometheus.Desc{
			NewTaskStatusFamily().Desc(),
			NewDagStatusFamily().Desc(),
			NewDagRunDurationFamily().Desc(),
		},
		logger: log.WithComponent("prometheus-collector"),
	}
}

// Describe implements prometheus.Collector.
func (p *PrometheusCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range p.descs {
		ch <- d
	}
}

// Collect implements prometheus.Collector. A failed pass emits an invalid
// metric so that the HTTP handler answers with an error instead of
// serving a partial snapshot.
func (p *PrometheusCollector) Collect(ch chan<- prometheus.Metric) {
	ctx := context.Background()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	out, err := p.pass(ctx)
	if err != nil {
		metrics.LastScrapeSuccess.Set(0)
		p.updateHealth(false, err.Error())
		p.logger.Error().Err(err).Msg("Scrape failed")
		ch <- prometheus.NewInvalidMetric(p.descs[0], err)
		return
	}

	metrics.LastScrapeSuccess.Set(1)
	p.updateHealth(true, "")
	for _, m := range out {
		ch <- m
	}
}

func (p *PrometheusCollector) pass(ctx context.Context) ([]prometheus.Metric, error) {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.ScrapeDuration)

	families, err := p.collector.Collect(ctx)
	if err != nil {
		return nil, err
	}

	// Convert everything before sending anything.
	var out []prometheus.Metric
	for i := range families {
		ms, err := families[i].ConstMetrics()
		if err != nil {
			return nil, err
		}
		out = append(out, ms...)
	}
	return out, nil
}

func (p *PrometheusCollector) updateHealth(healthy bool, message string) {
	if p.health == nil {
		return
	}
	p.health.UpdateComponent(metrics.ComponentStore, healthy, message)
}
