package volume

import (
	"time"

	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio/selector"
	"go.uber.org/zap"
)

// Option represents Volume configuration option.
type Option func(*options)

type options struct {
	log     *zap.Logger
	metrics Metrics

	// backend parameters, ignored if opener is set.
	prm selector.Prm
	// opener opens backend instead of selector.
	opener func() (blockio.Backend, error)
}

func defaultOptions() options {
	return options{
		log:     zap.NewNop(),
		metrics: noopMetrics{},
		prm: selector.Prm{
			Path:     DefaultPath,
			Kind:     selector.KindAuto,
			DirectIO: true,
		},
	}
}

// WithLogger returns option to set Volume's logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithMetrics returns option to report Volume statistics. If m also
// implements blockio.Metrics, it receives backend statistics too.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithPath returns option to set path to the data file.
func WithPath(p string) Option {
	return func(o *options) {
		o.prm.Path = p
	}
}

// WithBackendKind returns option to choose block I/O implementation.
func WithBackendKind(k selector.Kind) Option {
	return func(o *options) {
		o.prm.Kind = k
	}
}

// WithDirectIO returns option to open the data file bypassing OS page cache.
// Enabled by default.
func WithDirectIO(v bool) Option {
	return func(o *options) {
		o.prm.DirectIO = v
	}
}

// WithRingParams returns option to configure io_uring backend.
func WithRingParams(entries uint32, slowThreshold time.Duration) Option {
	return func(o *options) {
		o.prm.RingEntries = entries
		o.prm.RingSlowThreshold = slowThreshold
	}
}

// WithFallbackParams returns option to configure thread pool backend.
func WithFallbackParams(workers int, slowThreshold time.Duration) Option {
	return func(o *options) {
		o.prm.FallbackWorkers = workers
		o.prm.FallbackSlowThreshold = slowThreshold
	}
}

// WithBackendOpener returns option to open block I/O backend with the given
// function instead of choosing it from parameters.
func WithBackendOpener(f func() (blockio.Backend, error)) Option {
	return func(o *options) {
		o.opener = f
	}
}
