package volume

import (
	"fmt"
	"io"
	"time"

	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/align"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio"
	storagelog "github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/internal/log"
)

// Read returns payload stored under the given identifier.
//
// Returns ErrNotFound if there is no committed payload with this identifier.
// Returns ErrHandle if file handle could not be duplicated.
func (v *Volume) Read(id string) ([]byte, error) {
	started := time.Now()

	v.mtx.RLock()
	if err := v.acquire(); err != nil {
		v.mtx.RUnlock()
		return nil, err
	}
	e, ok := v.index[id]
	v.mtx.RUnlock()

	defer v.active.Done()

	if !ok {
		return nil, ErrNotFound
	}

	data, err := v.read(e)

	v.metrics.AddOp(blockio.OpRead, err == nil, e.size, time.Since(started))

	if err != nil {
		return nil, err
	}

	storagelog.Write(v.log,
		storagelog.OpField(blockio.OpRead),
		storagelog.RequestIDField(id),
		storagelog.OffsetField(e.off),
		storagelog.SizeField(e.size),
		storagelog.StorageTypeField(Type),
	)

	return data, nil
}

func (v *Volume) read(e entry) ([]byte, error) {
	h, release, err := v.handle()
	if err != nil {
		return nil, err
	}
	defer release()

	buf, err := h.ReadAt(align.Size(e.size), e.off)
	if err != nil {
		return nil, fmt.Errorf("read %d bytes at %d: %w", e.size, e.off, err)
	}
	if uint64(len(buf)) < e.size {
		return nil, fmt.Errorf("read %d bytes at %d: got %d: %w", e.size, e.off, len(buf), io.ErrUnexpectedEOF)
	}

	return align.Trim(buf, e.size), nil
}
