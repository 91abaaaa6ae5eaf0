package runner

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the per-Runner Prometheus instrumentation. Each Runner
// registers its own collectors labeled by the "name" metadata key (falling
// back to "default") so multiple callback modules in one process don't
// collide.
type metrics struct {
	queueDepth   prometheus.Gauge
	inFlight     prometheus.Gauge
	dropped      prometheus.Counter
	retries      prometheus.Counter
	shrinkEvents prometheus.Counter
	initReruns   prometheus.Counter
}

func newMetrics(reg prometheus.Registerer, name string) *metrics {
	if name == "" {
		name = "default"
	}
	labels := prometheus.Labels{"runner": name}

	m := &metrics{
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "chainrunner",
			Name:        "queue_depth_batches",
			Help:        "Number of batches currently waiting in the bound queue.",
			ConstLabels: labels,
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "chainrunner",
			Name:        "in_flight_batches",
			Help:        "Number of batches currently executing in workers.",
			ConstLabels: labels,
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "chainrunner",
			Name:        "dropped_entries_total",
			Help:        "Entries dropped because the bound queue rejected them.",
			ConstLabels: labels,
		}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "chainrunner",
			Name:        "retries_total",
			Help:        "Batches re-queued due to crash, :retry, or retry(entries).",
			ConstLabels: labels,
		}),
		shrinkEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "chainrunner",
			Name:        "shrink_events_total",
			Help:        "Successful Shrink() calls from the memory monitor.",
			ConstLabels: labels,
		}),
		initReruns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "chainrunner",
			Name:        "init_reruns_total",
			Help:        "Init reruns triggered by poll mode or shrink recovery.",
			ConstLabels: labels,
		}),
	}

	if reg != nil {
		reg.MustRegister(m.queueDepth, m.inFlight, m.dropped, m.retries, m.shrinkEvents, m.initReruns)
	}
	return m
}
