/*
Package ring implements blockio.Backend on top of the Linux io_uring
interface.

All handles of one data file share a single ring. Transfers are submitted
one by one as single-buffer READV/WRITEV requests and their completions are
collected by a dedicated routine, so callers only block on their own
operation.
*/
package ring

import "errors"

// Type is a name of the backend.
const Type = "io_uring"

// DefaultEntries is a default size of the submission queue.
const DefaultEntries = 256

// ErrUnsupported is returned when io_uring can not be used on the current
// system: non-Linux OS, old kernel or syscall filtered out.
var ErrUnsupported = errors.New("io_uring is not supported")
