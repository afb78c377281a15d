/*
Package fallback implements blockio.Backend with ordinary positional
pread/pwrite system calls.

It is used where io_uring is not available. Every transfer is executed on a
bounded worker pool while the caller waits for the result, so the number of
routines blocked in the kernel does not grow with the number of requests.
*/
package fallback

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/align"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio"
	"github.com/nspcc-dev/neofs-blockstore/pkg/util"
	"go.uber.org/zap"
)

// Type is a name of the backend.
const Type = "threadpool"

// DefaultWorkers is a default size of the worker pool.
const DefaultWorkers = 2048

// sharedPool is a worker pool with a number of handles using it.
type sharedPool struct {
	mtx  sync.Mutex
	refs int
	p    util.WorkerPool
}

func (s *sharedPool) acquire() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.refs == 0 {
		return false
	}
	s.refs++
	return true
}

func (s *sharedPool) release() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.refs--
	if s.refs == 0 {
		s.p.Release()
	}
}

// Backend is a blockio.Backend executing synchronous system calls on a
// worker pool.
type Backend struct {
	mon  *blockio.Monitor
	pool *sharedPool

	mtx    sync.RWMutex
	file   *os.File
	closed bool
}

// New opens the file at p for positional I/O.
func New(p string, opts ...Option) (blockio.Backend, error) {
	c := defaultCfg()
	for i := range opts {
		opts[i](c)
	}

	pool := c.pool
	if pool == nil {
		var err error

		pool, err = util.NewBlockingPool(c.workers, c.log)
		if err != nil {
			return nil, err
		}
	}

	f, err := blockio.OpenFile(p, c.directIO)
	if err != nil {
		pool.Release()
		return nil, err
	}

	c.log.Debug("thread pool I/O backend created",
		zap.String("path", p),
		zap.Int("workers", c.workers),
		zap.Bool("direct_io", c.directIO),
	)

	return &Backend{
		mon:  blockio.NewMonitor(Type, c.log, c.threshold, c.metrics),
		pool: &sharedPool{refs: 1, p: pool},
		file: f,
	}, nil
}

// Type implements blockio.Backend.
func (b *Backend) Type() string { return Type }

// exec runs fn on the pool and waits for it to finish. The handle stays
// read-locked meanwhile, so the file can not be closed under the call.
func (b *Backend) exec(fn func(f *os.File) error) error {
	b.mtx.RLock()
	defer b.mtx.RUnlock()

	if b.closed {
		return blockio.ErrClosed
	}

	done := make(chan error, 1)

	err := b.pool.p.Submit(func() {
		done <- fn(b.file)
	})
	if err != nil {
		return fmt.Errorf("submit I/O task: %w", err)
	}

	return <-done
}

// WriteAt implements blockio.Backend.
func (b *Backend) WriteAt(p []byte, off uint64) (err error) {
	started := time.Now()
	defer func() { b.mon.Observe(blockio.OpWrite, len(p), off, started, err) }()

	return b.exec(func(f *os.File) error {
		n, err := f.WriteAt(p, int64(off))
		if err != nil {
			if n < len(p) && !errors.Is(err, io.ErrShortWrite) {
				err = fmt.Errorf("%w: %w", io.ErrShortWrite, err)
			}
			return fmt.Errorf("write %d bytes at %d (%d written): %w", len(p), off, n, err)
		}
		return nil
	})
}

// ReadAt implements blockio.Backend.
func (b *Backend) ReadAt(size, off uint64) (buf []byte, err error) {
	started := time.Now()
	defer func() { b.mon.Observe(blockio.OpRead, int(size), off, started, err) }()

	buf = align.Buffer(size)

	err = b.exec(func(f *os.File) error {
		n, err := f.ReadAt(buf, int64(off))
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return fmt.Errorf("read %d bytes at %d (%d read): %w", size, off, n, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return buf, nil
}

// Duplicate implements blockio.Backend. The copy has its own descriptor and
// shares the worker pool with b.
func (b *Backend) Duplicate() (blockio.Backend, error) {
	b.mtx.RLock()
	defer b.mtx.RUnlock()

	if b.closed || !b.pool.acquire() {
		return nil, blockio.ErrClosed
	}

	f, err := blockio.DupFile(b.file)
	if err != nil {
		b.pool.release()
		return nil, err
	}

	return &Backend{
		mon:  b.mon,
		pool: b.pool,
		file: f,
	}, nil
}

// Stat implements blockio.Backend.
func (b *Backend) Stat() (blockio.Info, error) {
	b.mtx.RLock()
	defer b.mtx.RUnlock()

	if b.closed {
		return blockio.Info{}, blockio.ErrClosed
	}
	return blockio.StatFile(b.file)
}

// Close implements blockio.Backend. The pool is released together with the
// last handle using it.
func (b *Backend) Close() error {
	b.mtx.Lock()
	if b.closed {
		b.mtx.Unlock()
		return nil
	}
	b.closed = true
	b.mtx.Unlock()

	b.pool.release()

	err := b.file.Close()
	if err != nil {
		return fmt.Errorf("close data file: %w", err)
	}
	return nil
}
