package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/discrete-sim/kernel/metrics"
)

func TestNoOpDoesNotPanic(t *testing.T) {
	var c metrics.Collector = metrics.NoOp{}
	c.DispatchPassStarted(3)
	c.DispatchPassFinished(time.Millisecond, 2)
	c.StoreWrite()
	c.WorkerTimeout()
	c.ActiveComponents(5)
	c.StoreEdition(10)
}

func TestPrometheusCollectorUpdatesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := metrics.NewPrometheus(reg)

	p.DispatchPassFinished(5*time.Millisecond, 3)
	p.StoreWrite()
	p.WorkerTimeout()
	p.ActiveComponents(4)
	p.StoreEdition(7)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["sim_store_edition"])
	assert.True(t, names["sim_active_components"])
	assert.True(t, names["sim_events_dispatched_total"])
}
