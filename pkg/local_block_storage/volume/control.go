package volume

import (
	"fmt"

	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/align"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio/selector"
	"github.com/nspcc-dev/neofs-blockstore/pkg/util"
	"go.uber.org/zap"
)

// Open opens the data file and positions write cursor at its block-aligned
// end. Existing content is kept but not indexed. Volume can not be reopened
// after Close.
func (v *Volume) Open() error {
	v.mtx.Lock()
	defer v.mtx.Unlock()

	if v.closed {
		return ErrClosed
	}
	if v.opened {
		return nil
	}

	var (
		b   blockio.Backend
		err error
	)
	if v.opener != nil {
		b, err = v.opener()
	} else {
		err = util.MkdirParentX(v.prm.Path, 0o750)
		if err != nil {
			return fmt.Errorf("create data file directory: %w", err)
		}
		b, err = selector.Open(v.prm)
	}
	if err != nil {
		return fmt.Errorf("open block I/O backend: %w", err)
	}

	info, err := b.Stat()
	if err != nil {
		_ = b.Close()
		return fmt.Errorf("stat data file: %w", err)
	}

	v.backend = b
	v.cursor = align.Up(info.Size)
	v.opened = true

	v.metrics.SetCursor(v.cursor)
	v.metrics.SetEntries(0)

	fields := []zap.Field{
		zap.String("path", info.Path),
		zap.String("backend", b.Type()),
		zap.Uint64("file_size", info.Size),
		zap.Uint64("cursor", v.cursor),
	}
	if !align.IsAligned(info.Size) {
		v.log.Warn("data file has unaligned tail, skipping it", fields...)
	} else {
		v.log.Info("volume opened", fields...)
	}

	return nil
}

// Close waits for all in-flight operations to finish and closes the data
// file. Subsequent operations return ErrClosed.
func (v *Volume) Close() error {
	v.mtx.Lock()
	if v.closed {
		v.mtx.Unlock()
		return nil
	}
	v.closed = true
	b := v.backend
	v.mtx.Unlock()

	v.active.Wait()

	if b == nil {
		return nil
	}

	err := b.Close()
	if err != nil {
		return fmt.Errorf("close block I/O backend: %w", err)
	}

	v.log.Info("volume closed")

	return nil
}
