package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Sample is one labeled gauge value.
type Sample struct {
	LabelValues []string `yaml:"labels" json:"labels"`
	Value       float64  `yaml:"value" json:"value"`
}

// Family is a gauge metric family built during one collection pass. It is
// independent of any exposition library; ConstMetrics bridges it to
// prometheus.
type Family struct {
	Name    string   `yaml:"name" json:"name"`
	Help    string   `yaml:"help" json:"help"`
	Labels  []string `yaml:"label_names" json:"label_names"`
	Samples []Sample `yaml:"samples" json:"samples"`
}

// NewGaugeFamily creates a family with no samples.
func NewGaugeFamily(name, help string, labels ...string) *Family {
	return &Family{
		Name:    name,
		Help:    help,
		Labels:  labels,
		Samples: []Sample{},
	}
}

// Add appends a sample. labelValues must match the family's label schema.
func (f *Family) Add(value float64, labelValues ...string) error {
	if len(labelValues) != len(f.Labels) {
		return fmt.Errorf("%s: got %d label values for %d labels", f.Name, len(labelValues), len(f.Labels))
	}
	f.Samples = append(f.Samples, Sample{LabelValues: labelValues, Value: value})
	return nil
}

// Desc returns the prometheus descriptor of the family.
func (f *Family) Desc() *prometheus.Desc {
	return prometheus.NewDesc(f.Name, f.Help, f.Labels, nil)
}

// ConstMetrics converts every sample to a prometheus gauge.
func (f *Family) ConstMetrics() ([]prometheus.Metric, error) {
	desc := f.Desc()
	out := make([]prometheus.Metric, 0, len(f.Samples))
	for _, s := range f.Samples {
		m, err := prometheus.NewConstMetric(desc, prometheus.GaugeValue, s.Value, s.LabelValues...)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s sample: %w", f.Name, err)
		}
		out = append(out, m)
	}
	return out, nil
}
