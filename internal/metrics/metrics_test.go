package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-gamedev/jobkit"
)

type fakeSource struct {
	stats jobkit.Stats
}

func (f fakeSource) GetStats() jobkit.Stats {
	return f.stats
}

func TestCollectorGathersCurrentStats(t *testing.T) {
	source := fakeSource{stats: jobkit.Stats{
		WorkerCount: 4,
		Queued:      2,
		InFlight:    1,
		Submitted:   10,
		Completed:   7,
	}}

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(NewCollector(source)))

	families, err := reg.Gather()
	require.NoError(t, err)

	values := make(map[string]float64, len(families))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			values[mf.GetName()] = metricValue(m)
		}
	}

	assert.Equal(t, float64(4), values["jobkit_worker_count"])
	assert.Equal(t, float64(2), values["jobkit_jobs_queued"])
	assert.Equal(t, float64(1), values["jobkit_jobs_in_flight"])
	assert.Equal(t, float64(10), values["jobkit_jobs_submitted_total"])
	assert.Equal(t, float64(7), values["jobkit_jobs_completed_total"])
}

func metricValue(m *dto.Metric) float64 {
	if g := m.GetGauge(); g != nil {
		return g.GetValue()
	}
	if c := m.GetCounter(); c != nil {
		return c.GetValue()
	}
	return 0
}
