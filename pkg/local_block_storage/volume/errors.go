package volume

import (
	"errors"

	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/util/logicerr"
)

// ErrNotFound is returned when there is no committed payload with the
// requested identifier.
var ErrNotFound = logicerr.New("payload not found")

// ErrAlreadyExists is returned when writing payload with the identifier which
// is already stored or being written.
var ErrAlreadyExists = logicerr.New("payload with this identifier already exists")

// ErrHandle is returned when a per-operation file handle can not be obtained.
var ErrHandle = errors.New("could not obtain data file handle")

// ErrClosed is returned for operations with the Volume which is not opened or
// already closed.
var ErrClosed = errors.New("volume is closed")
