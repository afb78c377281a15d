/*
Package blockio defines a capability of positional block I/O against a single
data file and the helpers shared by its implementations.

Two implementations exist: [ring] submits transfers to the Linux io_uring
completion ring and [fallback] executes synchronous pread/pwrite calls on a
worker pool. Both expect the caller to supply block-aligned offsets and buffer
lengths (see align package) and do not check it themselves.

[ring]: https://pkg.go.dev/github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio/ring
[fallback]: https://pkg.go.dev/github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio/fallback
*/
package blockio

import (
	"time"
)

// Backend is a handle to the data file.
//
// All transfers are positional: Backend carries no file cursor, so one handle
// may serve concurrent operations. Still, callers are expected to work through
// their own Duplicate-d handles.
type Backend interface {
	// Type returns implementation name for logs and metrics.
	Type() string

	// WriteAt writes exactly len(p) bytes at the given offset. Incomplete
	// write is an error wrapping io.ErrShortWrite.
	WriteAt(p []byte, off uint64) error

	// ReadAt reads exactly size bytes from the given offset. Reading past the
	// end of file results in an error wrapping io.ErrUnexpectedEOF.
	ReadAt(size, off uint64) ([]byte, error)

	// Duplicate returns an independent handle to the same file which can be
	// used and closed separately from the original one. Implementations which
	// can not do it return ErrDuplicateUnsupported.
	Duplicate() (Backend, error)

	// Stat returns information about the underlying file.
	Stat() (Info, error)

	// Close releases the handle. All subsequent operations return ErrClosed.
	Close() error
}

// Info groups information about the data file.
type Info struct {
	// Path to the file.
	Path string
	// Current length of the file in bytes.
	Size uint64
	// Last modification time.
	ModTime time.Time
}
