package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const volumeSubsystem = "volume"

const (
	opLabelKey      = "op"
	successLabelKey = "success"
	backendLabelKey = "backend"
)

type volumeMetrics struct {
	opCounter  *prometheus.CounterVec
	opDuration *prometheus.HistogramVec
	payload    *prometheus.CounterVec

	cursor  prometheus.Gauge
	entries prometheus.Gauge
	wasted  prometheus.Counter
}

func newVolumeMetrics() volumeMetrics {
	return volumeMetrics{
		opCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: volumeSubsystem,
			Name:      "ops_total",
			Help:      "Number of volume operations",
		}, []string{opLabelKey, successLabelKey}),
		opDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: volumeSubsystem,
			Name:      "op_duration_seconds",
			Help:      "Volume operations handling time",
		}, []string{opLabelKey}),
		payload: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: volumeSubsystem,
			Name:      "payload_bytes_total",
			Help:      "Number of payload bytes successfully transferred",
		}, []string{opLabelKey}),
		cursor: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: volumeSubsystem,
			Name:      "cursor_bytes",
			Help:      "Next write position in the data file",
		}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: volumeSubsystem,
			Name:      "entries",
			Help:      "Number of addressable payloads",
		}),
		wasted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: volumeSubsystem,
			Name:      "wasted_bytes_total",
			Help:      "Data file space reserved by failed writes",
		}),
	}
}

func (m volumeMetrics) register(reg prometheus.Registerer) {
	reg.MustRegister(m.opCounter)
	reg.MustRegister(m.opDuration)
	reg.MustRegister(m.payload)
	reg.MustRegister(m.cursor)
	reg.MustRegister(m.entries)
	reg.MustRegister(m.wasted)
}

// AddOp implements volume.Metrics.
func (m volumeMetrics) AddOp(op string, success bool, size uint64, d time.Duration) {
	m.opCounter.With(prometheus.Labels{
		opLabelKey:      op,
		successLabelKey: strconv.FormatBool(success),
	}).Inc()
	m.opDuration.With(prometheus.Labels{opLabelKey: op}).Observe(d.Seconds())
	if success {
		m.payload.With(prometheus.Labels{opLabelKey: op}).Add(float64(size))
	}
}

// SetCursor implements volume.Metrics.
func (m volumeMetrics) SetCursor(off uint64) {
	m.cursor.Set(float64(off))
}

// SetEntries implements volume.Metrics.
func (m volumeMetrics) SetEntries(n int) {
	m.entries.Set(float64(n))
}

// AddWasted implements volume.Metrics.
func (m volumeMetrics) AddWasted(n uint64) {
	m.wasted.Add(float64(n))
}
