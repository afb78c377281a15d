//go:build !linux

package ring

import (
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio"
)

// New always fails with ErrUnsupported outside Linux.
func New(string, ...Option) (blockio.Backend, error) {
	return nil, ErrUnsupported
}

// Probe always returns ErrUnsupported outside Linux.
func Probe() error {
	return ErrUnsupported
}
