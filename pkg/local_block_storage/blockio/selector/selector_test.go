package selector_test

import (
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/align"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio/fallback"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio/internal/backendtest"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio/ring"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio/selector"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for s, exp := range map[string]selector.Kind{
		"":           selector.KindAuto,
		"auto":       selector.KindAuto,
		"io_uring":   selector.KindRing,
		"threadpool": selector.KindFallback,
	} {
		k, err := selector.ParseKind(s)
		require.NoError(t, err, s)
		require.Equal(t, exp, k, s)
	}

	_, err := selector.ParseKind("mmap")
	require.Error(t, err)
}

func open(t *testing.T, kind selector.Kind) blockio.Backend {
	b, err := selector.Open(selector.Prm{
		Path:            filepath.Join(t.TempDir(), "data.bin"),
		Kind:            kind,
		FallbackWorkers: 8,
		RingEntries:     8,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestOpen(t *testing.T) {
	t.Run("fallback", func(t *testing.T) {
		require.Equal(t, fallback.Type, open(t, selector.KindFallback).Type())
	})

	t.Run("auto", func(t *testing.T) {
		b := open(t, selector.KindAuto)
		if ring.Probe() == nil {
			require.Equal(t, ring.Type, b.Type())
		} else {
			require.Equal(t, fallback.Type, b.Type())
		}
	})

	t.Run("ring", func(t *testing.T) {
		if err := ring.Probe(); err != nil {
			_, err = selector.Open(selector.Prm{
				Path: filepath.Join(t.TempDir(), "data.bin"),
				Kind: selector.KindRing,
			})
			require.ErrorIs(t, err, ring.ErrUnsupported)
			return
		}
		require.Equal(t, ring.Type, open(t, selector.KindRing).Type())
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := selector.Open(selector.Prm{
			Path: filepath.Join(t.TempDir(), "data.bin"),
			Kind: "mmap",
		})
		require.Error(t, err)
	})
}

// Both implementations must produce identical files for identical requests.
func TestBackendsEquivalence(t *testing.T) {
	if err := ring.Probe(); err != nil {
		t.Skipf("io_uring is unavailable: %v", err)
	}

	blocks := [][]byte{
		backendtest.Block(t, 1),
		backendtest.Block(t, 4),
		backendtest.Block(t, 2),
	}

	var results [][]byte
	for _, kind := range []selector.Kind{selector.KindRing, selector.KindFallback} {
		b := open(t, kind)

		var off uint64
		for i := range blocks {
			require.NoError(t, b.WriteAt(blocks[i], off))
			off += uint64(len(blocks[i]))
		}

		info, err := b.Stat()
		require.NoError(t, err)
		require.EqualValues(t, 7*align.BlockSize, info.Size)

		all, err := b.ReadAt(off, 0)
		require.NoError(t, err)
		results = append(results, all)
	}

	require.Equal(t, results[0], results[1])
}
