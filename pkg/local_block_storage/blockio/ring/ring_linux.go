//go:build linux

package ring

import (
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/align"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// shared is a ring with a number of handles using it.
type shared struct {
	mtx  sync.Mutex
	refs int
	r    *uring
}

func (s *shared) acquire() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.refs == 0 {
		return false
	}
	s.refs++
	return true
}

func (s *shared) release() error {
	s.mtx.Lock()
	s.refs--
	last := s.refs == 0
	s.mtx.Unlock()

	if last {
		return s.r.close()
	}
	return nil
}

// Backend is a blockio.Backend submitting transfers to io_uring.
type Backend struct {
	mon  *blockio.Monitor
	ring *shared

	mtx    sync.RWMutex
	file   *os.File
	closed bool
}

// New opens the file at p and creates io_uring serving it.
func New(p string, opts ...Option) (blockio.Backend, error) {
	c := defaultCfg()
	for i := range opts {
		opts[i](c)
	}

	r, err := newURing(c.entries)
	if err != nil {
		return nil, err
	}

	f, err := blockio.OpenFile(p, c.directIO)
	if err != nil {
		_ = r.close()
		return nil, err
	}

	c.log.Debug("io_uring created",
		zap.String("path", p),
		zap.Int("entries", cap(r.slots)),
		zap.Bool("direct_io", c.directIO),
	)

	return &Backend{
		mon:  blockio.NewMonitor(Type, c.log, c.threshold, c.metrics),
		ring: &shared{refs: 1, r: r},
		file: f,
	}, nil
}

// Probe checks whether io_uring is usable by creating a small ring and
// passing a no-op request through it.
func Probe() error {
	r, err := newURing(2)
	if err != nil {
		return err
	}

	res, err := r.do(opNop, -1, nil, 0)
	if err == nil && res < 0 {
		err = syscall.Errno(-res)
	}

	errClose := r.close()
	if err != nil {
		return fmt.Errorf("%w: no-op request: %w", ErrUnsupported, err)
	}
	return errClose
}

// Type implements blockio.Backend.
func (b *Backend) Type() string { return Type }

// transfer passes single request to the ring. The handle is read-locked until
// completion, so the descriptor can not be closed and reused under the kernel.
func (b *Backend) transfer(opcode uint8, buf []byte, off uint64) (int32, error) {
	b.mtx.RLock()
	defer b.mtx.RUnlock()

	if b.closed {
		return 0, blockio.ErrClosed
	}
	return b.ring.r.do(opcode, int(b.file.Fd()), buf, off)
}

// WriteAt implements blockio.Backend.
func (b *Backend) WriteAt(p []byte, off uint64) (err error) {
	started := time.Now()
	defer func() { b.mon.Observe(blockio.OpWrite, len(p), off, started, err) }()

	res, err := b.transfer(opWritev, p, off)
	if err != nil {
		return err
	}
	if res < 0 {
		return fmt.Errorf("write %d bytes at %d: %w", len(p), off, syscall.Errno(-res))
	}
	if int(res) != len(p) {
		return fmt.Errorf("write %d bytes at %d: %w (%d written)", len(p), off, io.ErrShortWrite, res)
	}
	return nil
}

// ReadAt implements blockio.Backend.
func (b *Backend) ReadAt(size, off uint64) (buf []byte, err error) {
	started := time.Now()
	defer func() { b.mon.Observe(blockio.OpRead, int(size), off, started, err) }()

	buf = align.Buffer(size)

	res, err := b.transfer(opReadv, buf, off)
	if err != nil {
		return nil, err
	}
	if res < 0 {
		return nil, fmt.Errorf("read %d bytes at %d: %w", size, off, syscall.Errno(-res))
	}
	if uint64(res) != size {
		return nil, fmt.Errorf("read %d bytes at %d: %w (%d read)", size, off, io.ErrUnexpectedEOF, res)
	}
	return buf, nil
}

// Duplicate implements blockio.Backend. The copy has its own descriptor and
// shares the ring with b.
func (b *Backend) Duplicate() (blockio.Backend, error) {
	b.mtx.RLock()
	defer b.mtx.RUnlock()

	if b.closed || !b.ring.acquire() {
		return nil, blockio.ErrClosed
	}

	f, err := blockio.DupFile(b.file)
	if err != nil {
		_ = b.ring.release()
		return nil, err
	}

	return &Backend{
		mon:  b.mon,
		ring: b.ring,
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

// Close implements blockio.Backend. The ring is destroyed together with the
// last handle using it.
func (b *Backend) Close() error {
	b.mtx.Lock()
	if b.closed {
		b.mtx.Unlock()
		return nil
	}
	b.closed = true
	b.mtx.Unlock()

	err := b.ring.release()

	if errFile := b.file.Close(); errFile != nil {
		err = multierr.Append(err, fmt.Errorf("close data file: %w", errFile))
	}

	return err
}
