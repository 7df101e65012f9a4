package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus implements Collector on top of client_golang, registering
// its metrics against the Registerer passed to NewPrometheus.
type Prometheus struct {
	dispatchDuration prometheus.Histogram
	eventsDispatched prometheus.Counter
	storeWrites      prometheus.Counter
	workerTimeouts   prometheus.Counter
	activeComponents prometheus.Gauge
	storeEdition     prometheus.Gauge
}

// NewPrometheus registers the kernel's metric set against reg and
// returns a Collector backed by them.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		dispatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sim_dispatch_pass_duration_seconds",
			Help:    "Wall-clock duration of one dispatch pass.",
			Buckets: prometheus.DefBuckets,
		}),
		eventsDispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_events_dispatched_total",
			Help: "Total number of events delivered to workers.",
		}),
		storeWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_store_writes_total",
			Help: "Total number of successful store writes.",
		}),
		workerTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_worker_timeouts_total",
			Help: "Total number of worker dispatch timeouts.",
		}),
		activeComponents: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sim_active_components",
			Help: "Number of currently registered active components.",
		}),
		storeEdition: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sim_store_edition",
			Help: "Current edition counter of the kernel's store.",
		}),
	}
	reg.MustRegister(
		p.dispatchDuration,
		p.eventsDispatched,
		p.storeWrites,
		p.workerTimeouts,
		p.activeComponents,
		p.storeEdition,
	)
	return p
}

func (p *Prometheus) DispatchPassStarted(int) {}

func (p *Prometheus) DispatchPassFinished(d time.Duration, eventsDispatched int) {
	p.dispatchDuration.Observe(d.Seconds())
	p.eventsDispatched.Add(float64(eventsDispatched))
}

func (p *Prometheus) StoreWrite() { p.storeWrites.Inc() }

func (p *Prometheus) WorkerTimeout() { p.workerTimeouts.Inc() }

func (p *Prometheus) ActiveComponents(n int) { p.activeComponents.Set(float64(n)) }

func (p *Prometheus) StoreEdition(edition uint32) { p.storeEdition.Set(float64(edition)) }

var _ Collector = (*Prometheus)(nil)
