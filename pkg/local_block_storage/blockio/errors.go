package blockio

import "errors"

// ErrClosed is returned for any operation with a closed Backend.
var ErrClosed = errors.New("block I/O handle is closed")

// ErrDuplicateUnsupported is returned by Backend.Duplicate when handle can not
// be duplicated. Original handle should be used then.
var ErrDuplicateUnsupported = errors.New("handle duplication is not supported")

// ErrDirectIOUnsupported is returned when file system refuses to open the
// data file in direct I/O mode.
var ErrDirectIOUnsupported = errors.New("direct I/O is not supported by the file system")
