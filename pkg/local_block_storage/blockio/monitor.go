package blockio

import (
	"time"

	"go.uber.org/zap"
)

// Operation names used in logs and metrics.
const (
	OpWrite = "write"
	OpRead  = "read"
)

// Metrics is a sink for backend operation statistics.
type Metrics interface {
	AddBackendOpDuration(backend, op string, d time.Duration)
	IncBackendSlowOps(backend, op string)
}

type noopMetrics struct{}

func (noopMetrics) AddBackendOpDuration(string, string, time.Duration) {}
func (noopMetrics) IncBackendSlowOps(string, string)                   {}

// NoopMetrics returns Metrics discarding everything.
func NoopMetrics() Metrics { return noopMetrics{} }

// Monitor measures backend operations. Every operation is logged at debug
// level, operations taking longer than the threshold are logged as warnings.
// Slow operations are not failures.
type Monitor struct {
	typ       string
	log       *zap.Logger
	threshold time.Duration
	metrics   Metrics
}

// NewMonitor constructs Monitor for the backend of the given type. Zero
// threshold disables slow operation warnings. Nil logger and metrics are
// replaced with no-op ones.
func NewMonitor(typ string, l *zap.Logger, threshold time.Duration, m Metrics) *Monitor {
	if l == nil {
		l = zap.NewNop()
	}
	if m == nil {
		m = noopMetrics{}
	}

	return &Monitor{
		typ:       typ,
		log:       l.With(zap.String("backend", typ)),
		threshold: threshold,
		metrics:   m,
	}
}

// Threshold returns slow operation threshold.
func (m *Monitor) Threshold() time.Duration {
	return m.threshold
}

// Observe accounts operation op of size bytes at offset off started at
// the given time and finished now with the given error.
func (m *Monitor) Observe(op string, size int, off uint64, started time.Time, err error) {
	d := time.Since(started)

	m.metrics.AddBackendOpDuration(m.typ, op, d)

	if ce := m.log.Check(zap.DebugLevel, "block I/O operation completed"); ce != nil {
		ce.Write(
			zap.String("op", op),
			zap.Uint64("offset", off),
			zap.Int("size", size),
			zap.Duration("duration", d),
			zap.Error(err),
		)
	}

	if m.threshold > 0 && d > m.threshold {
		m.metrics.IncBackendSlowOps(m.typ, op)
		m.log.Warn("slow block I/O operation",
			zap.String("op", op),
			zap.Uint64("offset", off),
			zap.Int("size", size),
			zap.Duration("duration", d),
			zap.Duration("threshold", m.threshold),
		)
	}
}
