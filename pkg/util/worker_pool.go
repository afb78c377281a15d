package util

import (
	"fmt"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// WorkerPool runs submitted functions in separate routines.
type WorkerPool interface {
	// Submit queues fn for execution. It blocks while all workers are busy
	// and returns an error if fn could not be queued at all.
	Submit(fn func()) error

	// Release stops the pool. Subsequent Submit calls return ErrPoolClosed.
	// Functions already running are not waited for.
	Release()
}

// ErrPoolClosed is returned when submitting task to a released pool.
var ErrPoolClosed = ants.ErrPoolClosed

// NewBlockingPool returns pool of the given capacity for blocking system
// calls. Submit waits for a free worker instead of failing when the pool is
// exhausted.
func NewBlockingPool(size int, l *zap.Logger) (WorkerPool, error) {
	if l == nil {
		l = zap.NewNop()
	}

	p, err := ants.NewPool(size,
		ants.WithNonblocking(false),
		ants.WithLogger(zap.NewStdLog(l)),
	)
	if err != nil {
		return nil, fmt.Errorf("create pool of %d workers: %w", size, err)
	}

	return p, nil
}

// syncWorkerPool executes submitted job immediately in the caller's routine.
type syncWorkerPool struct {
	closed atomic.Bool
}

// NewSyncWorkerPool returns WorkerPool which runs tasks synchronously.
func NewSyncWorkerPool() WorkerPool {
	return new(syncWorkerPool)
}

// Submit runs fn and returns nil unless the pool is released.
func (p *syncWorkerPool) Submit(fn func()) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}

	fn()

	return nil
}

// Release implements WorkerPool.
func (p *syncWorkerPool) Release() {
	p.closed.Store(true)
}
