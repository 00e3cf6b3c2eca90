package asyncrt

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the executor's optional prometheus collectors, registered
// when Config.MetricsEnabled is true. Unlike the teacher's hand-rolled
// percentile tracker (metrics.go, backed by its own P-Square
// implementation), this runtime delegates to prometheus/client_golang —
// the same library GlyphLang's pkg/metrics and everyday-items-toolkit wire
// up — since the runtime has no business owning a metrics export format.
type Metrics struct {
	QueueDepth   prometheus.Gauge
	QueueDrops   prometheus.Counter
	ProgressCall *prometheus.CounterVec // labeled by outcome: pending, completed, failure
	PollDuration prometheus.Histogram
}

// newMetrics constructs a fresh set of collectors and registers them against
// the supplied registerer, which may be prometheus.DefaultRegisterer (as
// Executor construction passes) or a private one for tests.
func newMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ready_queue_depth",
			Help:      "Current number of futures on the executor's ready queue.",
		}),
		QueueDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queue_drops_total",
			Help:      "Futures dropped because the ready queue was full at push time.",
		}),
		ProgressCall: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "progress_calls_total",
			Help:      "Future Progress calls, labeled by the resulting state.",
		}, []string{"outcome"}),
		PollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reactor_poll_duration_seconds",
			Help:      "Wall-clock time spent blocked inside Reactor.Poll.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	collectors := []prometheus.Collector{m.QueueDepth, m.QueueDrops, m.ProgressCall, m.PollDuration}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) recordOutcome(state State) {
	if m == nil {
		return
	}
	switch state {
	case Pending:
		m.ProgressCall.WithLabelValues("pending").Inc()
	case Completed:
		m.ProgressCall.WithLabelValues("completed").Inc()
	case Failure:
		m.ProgressCall.WithLabelValues("failure").Inc()
	}
}
