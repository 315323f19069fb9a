package runtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus collectors for a single runtime, built
// via a factory-of-collectors style. Registry nil disables collection
// entirely — the zero value's methods are all safe no-ops.
type metrics struct {
	renders           prometheus.Counter
	reconcileDuration prometheus.Histogram
	dispatchMisses    *prometheus.CounterVec
	reducerTimeouts   prometheus.Counter
	treeBytes         prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}
	factory := promauto.With(reg)
	return &metrics{
		renders: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "orbit",
			Name:      "renders_total",
			Help:      "Total number of completed reconciliation passes.",
		}),
		reconcileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "orbit",
			Name:      "reconcile_duration_seconds",
			Help:      "Time spent inside a single reconciliation pass.",
			Buckets:   prometheus.DefBuckets,
		}),
		dispatchMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orbit",
			Name:      "dispatch_misses_total",
			Help:      "Event or client-hook dispatches that found no matching id.",
		}, []string{"kind"}),
		reducerTimeouts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "orbit",
			Name:      "reducer_timeouts_total",
			Help:      "Reducer hook Get calls that timed out.",
		}),
		treeBytes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "orbit",
			Name:      "tree_bytes",
			Help:      "Approximate in-memory size of the current reconciled tree.",
		}),
	}
}

func (m *metrics) observeRender(seconds float64, treeBytes int64) {
	if m == nil {
		return
	}
	m.renders.Inc()
	m.reconcileDuration.Observe(seconds)
	m.treeBytes.Set(float64(treeBytes))
}

func (m *metrics) observeDispatchMiss(kind string) {
	if m == nil {
		return
	}
	m.dispatchMisses.WithLabelValues(kind).Inc()
}

func (m *metrics) observeReducerTimeout() {
	if m == nil {
		return
	}
	m.reducerTimeouts.Inc()
}
