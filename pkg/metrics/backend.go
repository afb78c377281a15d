package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const backendSubsystem = "blockio"

type backendMetrics struct {
	opDuration *prometheus.HistogramVec
	slowOps    *prometheus.CounterVec
}

func newBackendMetrics() backendMetrics {
	return backendMetrics{
		opDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: backendSubsystem,
			Name:      "op_duration_seconds",
			Help:      "Block I/O transfer time",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{backendLabelKey, opLabelKey}),
		slowOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: backendSubsystem,
			Name:      "slow_ops_total",
			Help:      "Number of block I/O transfers exceeded slow threshold",
		}, []string{backendLabelKey, opLabelKey}),
	}
}

func (m backendMetrics) register(reg prometheus.Registerer) {
	reg.MustRegister(m.opDuration)
	reg.MustRegister(m.slowOps)
}

// AddBackendOpDuration implements blockio.Metrics.
func (m backendMetrics) AddBackendOpDuration(backend, op string, d time.Duration) {
	m.opDuration.With(prometheus.Labels{
		backendLabelKey: backend,
		opLabelKey:      op,
	}).Observe(d.Seconds())
}

// IncBackendSlowOps implements blockio.Metrics.
func (m backendMetrics) IncBackendSlowOps(backend, op string) {
	m.slowOps.With(prometheus.Labels{
		backendLabelKey: backend,
		opLabelKey:      op,
	}).Inc()
}
