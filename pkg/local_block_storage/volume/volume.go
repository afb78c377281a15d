/*
Package volume implements the Storage Volume: append-only store of opaque
payloads in a single direct I/O data file.

Every payload is placed into a block-aligned byte range reserved by advancing
the write cursor. The reservation is the only step serialized between writers,
the transfers themselves run concurrently through per-operation duplicates
of the file handle. Payloads are addressed by caller-defined identifiers kept
in the in-memory index which is not persisted: after restart the data file is
appended to but old payloads are not addressable.
*/
package volume

import (
	"errors"
	"fmt"
	"sync"

	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio"
	"go.uber.org/zap"
)

// DefaultPath is a default path to the data file.
const DefaultPath = "data.bin"

// Type is a storage type used in logs.
const Type = "volume"

// entry describes committed payload.
type entry struct {
	off  uint64
	size uint64
}

// Volume is a Storage Volume instance.
type Volume struct {
	options

	mtx sync.RWMutex

	opened  bool
	closed  bool
	backend blockio.Backend
	cursor  uint64
	index   map[string]entry
	pending map[string]struct{}
	wasted  uint64

	// tracks operations using the backend.
	active sync.WaitGroup
}

// New creates, but does not open, Volume with the given options.
func New(opts ...Option) *Volume {
	v := &Volume{
		options: defaultOptions(),
		index:   make(map[string]entry),
		pending: make(map[string]struct{}),
	}

	for i := range opts {
		opts[i](&v.options)
	}

	if v.prm.Metrics == nil {
		if bm, ok := v.metrics.(blockio.Metrics); ok {
			v.prm.Metrics = bm
		}
	}
	v.prm.Logger = v.log

	return v
}

// Info groups information about the Volume.
type Info struct {
	// Path to the data file.
	Path string
	// Type of the block I/O backend.
	Backend string
	// Next write position.
	Cursor uint64
	// Number of committed payloads.
	Entries int
	// Number of bytes reserved by failed writes.
	Wasted uint64
}

// Info returns current Volume state.
func (v *Volume) Info() Info {
	v.mtx.RLock()
	defer v.mtx.RUnlock()

	info := Info{
		Path:    v.prm.Path,
		Cursor:  v.cursor,
		Entries: len(v.index),
		Wasted:  v.wasted,
	}
	if v.backend != nil {
		info.Backend = v.backend.Type()
	}

	return info
}

// acquire registers new operation. Must be called under lock.
func (v *Volume) acquire() error {
	if !v.opened || v.closed {
		return ErrClosed
	}
	v.active.Add(1)
	return nil
}

// handle returns per-operation duplicate of the backend and the function
// releasing it. Backends unable to duplicate are used as is.
func (v *Volume) handle() (blockio.Backend, func(), error) {
	h, err := v.backend.Duplicate()
	if err != nil {
		if errors.Is(err, blockio.ErrDuplicateUnsupported) {
			return v.backend, func() {}, nil
		}
		return nil, nil, fmt.Errorf("%w: %w", ErrHandle, err)
	}

	return h, func() {
		if err := h.Close(); err != nil {
			v.log.Debug("could not close duplicated handle", zap.Error(err))
		}
	}, nil
}
