package fallback

import (
	"time"

	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio"
	"github.com/nspcc-dev/neofs-blockstore/pkg/util"
	"go.uber.org/zap"
)

type cfg struct {
	log       *zap.Logger
	metrics   blockio.Metrics
	threshold time.Duration
	workers   int
	pool      util.WorkerPool
	directIO  bool
}

// Option is an option for New.
type Option func(*cfg)

func defaultCfg() *cfg {
	return &cfg{
		log:       zap.NewNop(),
		metrics:   blockio.NoopMetrics(),
		threshold: 100 * time.Millisecond,
		workers:   DefaultWorkers,
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

// WithWorkers returns option to set the number of routines executing system
// calls.
func WithWorkers(n int) Option {
	return func(c *cfg) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithPool returns option to run system calls on the given pool instead of
// creating a new one. Backend releases the pool on close.
func WithPool(p util.WorkerPool) Option {
	return func(c *cfg) {
		c.pool = p
	}
}

// WithDirectIO returns option to open the file bypassing OS page cache.
// Enabled by default.
func WithDirectIO(v bool) Option {
	return func(c *cfg) {
		c.directIO = v
	}
}
