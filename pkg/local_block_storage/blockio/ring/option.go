package ring

import (
	"time"

	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio"
	"go.uber.org/zap"
)

type cfg struct {
	log       *zap.Logger
	metrics   blockio.Metrics
	threshold time.Duration
	entries   uint32
	directIO  bool
}

// Option is an option for New.
type Option func(*cfg)

func defaultCfg() *cfg {
	return &cfg{
		log:       zap.NewNop(),
		metrics:   blockio.NoopMetrics(),
		threshold: 50 * time.Millisecond,
		entries:   DefaultEntries,
		directIO:  true,
	}
}

// WithLogger returns option to specify Backend's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l
	}
}

// WithMetrics returns option to report operation statistics.
func WithMetrics(m blockio.Metrics) Option {
	return func(c *cfg) {
		c.metrics = m
	}
}

// WithSlowThreshold returns option to set duration after which operation is
// reported as a slow one.
func WithSlowThreshold(d time.Duration) Option {
	return func(c *cfg) {
		c.threshold = d
	}
}

// WithEntries returns option to set submission queue size. Kernel rounds it
// up to a power of two.
func WithEntries(n uint32) Option {
	return func(c *cfg) {
		if n > 0 {
			c.entries = n
		}
	}
}

// WithDirectIO returns option to open the file bypassing OS page cache.
// Enabled by default.
func WithDirectIO(v bool) Option {
	return func(c *cfg) {
		c.directIO = v
	}
}
