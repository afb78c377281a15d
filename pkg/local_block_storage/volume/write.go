package volume

import (
	"fmt"
	"time"

	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/align"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio"
	storagelog "github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/internal/log"
	"go.uber.org/zap"
)

// Write stores data under the given identifier and returns the offset of
// its first byte in the data file.
//
// Returns ErrAlreadyExists if id is already stored or being written.
// Returns ErrHandle if file handle could not be duplicated. Transfer failure
// is returned as is, the reserved range stays unused then.
func (v *Volume) Write(id string, data []byte) (uint64, error) {
	var (
		started = time.Now()
		size    = uint64(len(data))
		aligned = align.Size(size)
	)

	// Reserve.
	v.mtx.Lock()
	if err := v.acquire(); err != nil {
		v.mtx.Unlock()
		return 0, err
	}
	if _, ok := v.index[id]; ok {
		v.mtx.Unlock()
		v.active.Done()
		return 0, ErrAlreadyExists
	}
	if _, ok := v.pending[id]; ok {
		v.mtx.Unlock()
		v.active.Done()
		return 0, ErrAlreadyExists
	}

	off := v.cursor
	v.cursor += aligned
	v.pending[id] = struct{}{}
	// gauges are set under the lock to keep their updates ordered
	v.metrics.SetCursor(v.cursor)
	v.mtx.Unlock()

	defer v.active.Done()

	// Transfer.
	err := v.transfer(data, off)

	// Commit.
	v.mtx.Lock()
	delete(v.pending, id)
	if err == nil {
		v.index[id] = entry{off: off, size: size}
	} else {
		v.wasted += aligned
	}
	v.metrics.SetEntries(len(v.index))
	v.mtx.Unlock()

	v.metrics.AddOp(blockio.OpWrite, err == nil, size, time.Since(started))

	if err != nil {
		v.metrics.AddWasted(aligned)
		v.log.Error("could not write payload",
			zap.String("request_id", id),
			zap.Uint64("offset", off),
			zap.Uint64("wasted", aligned),
			zap.Error(err),
		)
		return 0, err
	}

	storagelog.Write(v.log,
		storagelog.OpField(blockio.OpWrite),
		storagelog.RequestIDField(id),
		storagelog.OffsetField(off),
		storagelog.SizeField(size),
		storagelog.StorageTypeField(Type),
	)

	return off, nil
}

func (v *Volume) transfer(data []byte, off uint64) error {
	h, release, err := v.handle()
	if err != nil {
		return err
	}
	defer release()

	err = h.WriteAt(align.Pad(data), off)
	if err != nil {
		return fmt.Errorf("write %d bytes at %d: %w", len(data), off, err)
	}

	return nil
}
