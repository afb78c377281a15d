package backendtest

import (
	"bytes"
	"crypto/rand"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/align"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio"
	"github.com/stretchr/testify/require"
)

// Constructor opens blockio component over the file at the given path.
type Constructor = func(t *testing.T, path string) blockio.Backend

// TestAll runs all common checks against the Backend implementation.
func TestAll(t *testing.T, cons Constructor, expectedType string) {
	t.Run("type", func(t *testing.T) {
		b := open(t, cons)
		require.Equal(t, expectedType, b.Type())
	})
	t.Run("write and read", func(t *testing.T) {
		TestWriteRead(t, cons)
	})
	t.Run("read past end", func(t *testing.T) {
		TestReadPastEnd(t, cons)
	})
	t.Run("duplicate", func(t *testing.T) {
		TestDuplicate(t, cons)
	})
	t.Run("concurrent", func(t *testing.T) {
		TestConcurrent(t, cons)
	})
	t.Run("stat", func(t *testing.T) {
		TestStat(t, cons)
	})
	t.Run("closed", func(t *testing.T) {
		TestClosed(t, cons)
	})
}

func open(t *testing.T, cons Constructor) blockio.Backend {
	b := cons(t, filepath.Join(t.TempDir(), "data.bin"))
	t.Cleanup(func() { _ = b.Close() })
	return b
}

// Block returns block-aligned buffer of n blocks filled with random bytes.
func Block(t testing.TB, n int) []byte {
	buf := align.Buffer(uint64(n) * align.BlockSize)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	return buf
}

func TestWriteRead(t *testing.T, cons Constructor) {
	b := open(t, cons)

	first := Block(t, 1)
	second := Block(t, 3)

	require.NoError(t, b.WriteAt(first, 0))
	require.NoError(t, b.WriteAt(second, align.BlockSize))

	got, err := b.ReadAt(align.BlockSize, 0)
	require.NoError(t, err)
	require.Equal(t, first, got)

	got, err = b.ReadAt(3*align.BlockSize, align.BlockSize)
	require.NoError(t, err)
	require.Equal(t, second, got)

	// overwrite in the middle
	third := Block(t, 1)
	require.NoError(t, b.WriteAt(third, 2*align.BlockSize))

	got, err = b.ReadAt(4*align.BlockSize, 0)
	require.NoError(t, err)
	require.Equal(t, first, got[:align.BlockSize])
	require.Equal(t, second[:align.BlockSize], got[align.BlockSize:2*align.BlockSize])
	require.Equal(t, third, got[2*align.BlockSize:3*align.BlockSize])
	require.Equal(t, second[2*align.BlockSize:], got[3*align.BlockSize:])

	t.Run("gap", func(t *testing.T) {
		data := Block(t, 1)
		require.NoError(t, b.WriteAt(data, 10*align.BlockSize))

		got, err := b.ReadAt(align.BlockSize, 8*align.BlockSize)
		require.NoError(t, err)
		require.Equal(t, make([]byte, align.BlockSize), got)
	})
}

func TestReadPastEnd(t *testing.T, cons Constructor) {
	b := open(t, cons)

	_, err := b.ReadAt(align.BlockSize, 0)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	require.NoError(t, b.WriteAt(Block(t, 1), 0))

	_, err = b.ReadAt(2*align.BlockSize, 0)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestDuplicate(t *testing.T, cons Constructor) {
	b := open(t, cons)

	d, err := b.Duplicate()
	if errors.Is(err, blockio.ErrDuplicateUnsupported) {
		t.Skip("duplication is not supported")
	}
	require.NoError(t, err)
	require.Equal(t, b.Type(), d.Type())

	data := Block(t, 2)
	require.NoError(t, d.WriteAt(data, 0))

	got, err := b.ReadAt(2*align.BlockSize, 0)
	require.NoError(t, err)
	require.Equal(t, data, got)

	require.NoError(t, d.Close())

	// original handle survives
	got, err = b.ReadAt(2*align.BlockSize, 0)
	require.NoError(t, err)
	require.Equal(t, data, got)

	// and vice versa
	d, err = b.Duplicate()
	require.NoError(t, err)
	require.NoError(t, b.Close())

	got, err = d.ReadAt(2*align.BlockSize, 0)
	require.NoError(t, err)
	require.Equal(t, data, got)
	require.NoError(t, d.Close())
}

func TestConcurrent(t *testing.T, cons Constructor) {
	const workers = 32

	b := open(t, cons)

	blocks := make([][]byte, workers)
	for i := range blocks {
		blocks[i] = Block(t, i%4+1)
	}

	offsets := make([]uint64, workers)
	var off uint64
	for i := range blocks {
		offsets[i] = off
		off += uint64(len(blocks[i]))
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := range blocks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			h, err := b.Duplicate()
			if errors.Is(err, blockio.ErrDuplicateUnsupported) {
				h, err = b, nil
			} else if err == nil {
				defer h.Close()
			}
			if err != nil {
				errs[i] = err
				return
			}

			if err := h.WriteAt(blocks[i], offsets[i]); err != nil {
				errs[i] = err
				return
			}

			got, err := h.ReadAt(uint64(len(blocks[i])), offsets[i])
			if err != nil {
				errs[i] = err
				return
			}
			if !bytes.Equal(blocks[i], got) {
				errs[i] = errors.New("data mismatch")
			}
		}(i)
	}
	wg.Wait()

	for i := range errs {
		require.NoError(t, errs[i], i)
	}

	all, err := b.ReadAt(off, 0)
	require.NoError(t, err)
	require.Equal(t, bytes.Join(blocks, nil), all)
}

func TestStat(t *testing.T, cons Constructor) {
	p := filepath.Join(t.TempDir(), "data.bin")
	b := cons(t, p)
	t.Cleanup(func() { _ = b.Close() })

	info, err := b.Stat()
	require.NoError(t, err)
	require.Equal(t, p, info.Path)
	require.Zero(t, info.Size)

	require.NoError(t, b.WriteAt(Block(t, 2), align.BlockSize))

	info, err = b.Stat()
	require.NoError(t, err)
	require.EqualValues(t, 3*align.BlockSize, info.Size)
	require.False(t, info.ModTime.IsZero())
}

func TestClosed(t *testing.T, cons Constructor) {
	b := cons(t, filepath.Join(t.TempDir(), "data.bin"))

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	require.ErrorIs(t, b.WriteAt(Block(t, 1), 0), blockio.ErrClosed)

	_, err := b.ReadAt(align.BlockSize, 0)
	require.ErrorIs(t, err, blockio.ErrClosed)

	_, err = b.Duplicate()
	require.ErrorIs(t, err, blockio.ErrClosed)

	_, err = b.Stat()
	require.ErrorIs(t, err, blockio.ErrClosed)
}
