package metrics

import "github.com/prometheus/client_golang/prometheus"

const stateSubsystem = "state"

type stateMetrics struct {
	healthCheck prometheus.Gauge
}

func newStateMetrics() stateMetrics {
	return stateMetrics{
		healthCheck: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: stateSubsystem,
			Name:      "health",
			Help:      "Current server health status",
		}),
	}
}

func (m stateMetrics) register(reg prometheus.Registerer) {
	reg.MustRegister(m.healthCheck)
}

// SetHealth sets numeric health status of the server.
func (m stateMetrics) SetHealth(s int32) {
	m.healthCheck.Set(float64(s))
}
