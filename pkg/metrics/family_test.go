package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type familyCollector struct{ f *Family }

func (c familyCollector) Describe(ch chan<- *prometheus.Desc) { ch <- c.f.Desc() }

func (c familyCollector) Collect(ch chan<- prometheus.Metric) {
	ms, err := c.f.ConstMetrics()
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.f.Desc(), err)
		return
	}
	for _, m := range ms {
		ch <- m
	}
}

func TestFamilyAdd(t *testing.T) {
	f := NewGaugeFamily("airflow_dag_status", "help", "dag_id", "owner", "status")
	assert.NotNil(t, f.Samples)
	assert.Empty(t, f.Samples)

	require.NoError(t, f.Add(3, "etl_daily", "data", "success"))
	assert.Error(t, f.Add(1, "etl_daily", "data"))
	assert.Len(t, f.Samples, 1)
}

func TestFamilyConstMetrics(t *testing.T) {
	f := NewGaugeFamily("airflow_dag_run_duration", "Duration of currently running dag_runs in seconds", "dag_id", "run_id")
	require.NoError(t, f.Add(90, "etl_daily", "run_42"))

	expected := `
# HELP airflow_dag_run_duration Duration of currently running dag_runs in seconds
# TYPE airflow_dag_run_duration gauge
airflow_dag_run_duration{dag_id="etl_daily",run_id="run_42"} 90
`
	err := testutil.CollectAndCompare(familyCollector{f}, strings.NewReader(expected))
	assert.NoError(t, err)
}

func TestFamilyConstMetricsInvalidLabelValue(t *testing.T) {
	f := NewGaugeFamily("airflow_dag_status", "help", "dag_id")
	require.NoError(t, f.Add(1, "\xff"))

	_, err := f.ConstMetrics()
	assert.Error(t, err)
}

func TestNewRegistry(t *testing.T) {
	f := NewGaugeFamily("test_family", "help", "a")
	require.NoError(t, f.Add(1, "x"))

	reg, err := NewRegistry(familyCollector{f})
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["test_family"])
	assert.True(t, names["airflow_exporter_last_scrape_success"])
	assert.True(t, names["go_goroutines"])
}

func TestNewBuildInfo(t *testing.T) {
	bi := NewBuildInfo("1.2.0", "abc123")

	assert.Equal(t, 1, testutil.CollectAndCount(bi, "airflow_exporter_build_info"))

	reg, err := NewRegistry(bi)
	require.NoError(t, err)
	_, err = reg.Gather()
	require.NoError(t, err)
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(ScrapeDuration)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to register collector")
}
