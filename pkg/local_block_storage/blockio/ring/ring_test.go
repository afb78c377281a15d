package ring_test

import (
	"errors"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/align"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio/internal/backendtest"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio/ring"
	"github.com/stretchr/testify/require"
)

func requireRing(t *testing.T) {
	if err := ring.Probe(); err != nil {
		t.Skipf("io_uring is unavailable: %v", err)
	}
}

func newBackend(t *testing.T, p string, opts ...ring.Option) blockio.Backend {
	b, err := ring.New(p, append([]ring.Option{
		// test temporary directories are often on tmpfs
		ring.WithDirectIO(false),
		ring.WithEntries(8),
	}, opts...)...)
	require.NoError(t, err)
	return b
}

func TestGeneric(t *testing.T) {
	requireRing(t)

	backendtest.TestAll(t, func(t *testing.T, p string) blockio.Backend {
		return newBackend(t, p)
	}, ring.Type)
}

func TestUnsupported(t *testing.T) {
	if runtime.GOOS == "linux" {
		t.Skip("io_uring may be available on Linux")
	}

	require.ErrorIs(t, ring.Probe(), ring.ErrUnsupported)

	_, err := ring.New(filepath.Join(t.TempDir(), "data.bin"))
	require.ErrorIs(t, err, ring.ErrUnsupported)
}

func TestQueueOverflow(t *testing.T) {
	requireRing(t)

	// much more concurrent requests than submission entries
	const n = 256

	b := newBackend(t, filepath.Join(t.TempDir(), "data.bin"), ring.WithEntries(2))
	t.Cleanup(func() { _ = b.Close() })

	var (
		wg   sync.WaitGroup
		errs = make([]error, n)
		data = make([][]byte, n)
	)
	for i := range data {
		data[i] = backendtest.Block(t, 1)
	}

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = b.WriteAt(data[i], uint64(i)*align.BlockSize)
		}(i)
	}
	wg.Wait()

	for i := range errs {
		require.NoError(t, errs[i])
	}

	all, err := b.ReadAt(n*align.BlockSize, 0)
	require.NoError(t, err)
	for i := range data {
		require.Equal(t, data[i], all[i*align.BlockSize:(i+1)*align.BlockSize])
	}
}

func TestCloseWithDuplicates(t *testing.T) {
	requireRing(t)

	b := newBackend(t, filepath.Join(t.TempDir(), "data.bin"))

	dups := make([]blockio.Backend, 4)
	for i := range dups {
		var err error
		dups[i], err = b.Duplicate()
		require.NoError(t, err)
	}

	require.NoError(t, b.Close())

	for i := range dups {
		require.NoError(t, dups[i].WriteAt(backendtest.Block(t, 1), uint64(i)*align.BlockSize))
		require.NoError(t, dups[i].Close())
	}

	_, err := dups[0].Duplicate()
	require.True(t, errors.Is(err, blockio.ErrClosed))
}
