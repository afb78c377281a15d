package align_test

import (
	"bytes"
	"testing"
	"unsafe"

	"github.com/ncw/directio"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/align"
	"github.com/stretchr/testify/require"
)

func TestSize(t *testing.T) {
	for _, tc := range []struct {
		l, exp uint64
	}{
		{l: 0, exp: 512},
		{l: 1, exp: 512},
		{l: 13, exp: 512},
		{l: 511, exp: 512},
		{l: 512, exp: 512},
		{l: 513, exp: 1024},
		{l: 4096, exp: 4096},
		{l: 4097, exp: 4608},
	} {
		require.EqualValues(t, tc.exp, align.Size(tc.l), tc.l)
		require.True(t, align.IsAligned(align.Size(tc.l)))
	}
}

func TestUp(t *testing.T) {
	require.Zero(t, align.Up(0))
	require.EqualValues(t, 512, align.Up(1))
	require.EqualValues(t, 1024, align.Up(1000))
	require.EqualValues(t, 1024, align.Up(1024))
}

func TestPad(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		buf := align.Pad(nil)
		require.Len(t, buf, align.BlockSize)
		require.Equal(t, make([]byte, align.BlockSize), buf)
	})

	data := []byte("Hello, World!")
	buf := align.Pad(data)
	require.Len(t, buf, align.BlockSize)
	require.True(t, bytes.HasPrefix(buf, data))
	require.Equal(t, make([]byte, align.BlockSize-len(data)), buf[len(data):])

	if directio.AlignSize > 0 {
		addr := uintptr(unsafe.Pointer(&buf[0]))
		require.Zero(t, addr%uintptr(directio.AlignSize), "buffer is not memory-aligned")
	}

	data[0] = 'h'
	require.Equal(t, byte('H'), buf[0], "padded buffer must not share memory with the payload")
}

func TestTrim(t *testing.T) {
	data := []byte("This is a test message")
	buf := align.Pad(data)

	require.Equal(t, data, align.Trim(buf, uint64(len(data))))
	require.Empty(t, align.Trim(buf, 0))
	require.Panics(t, func() { align.Trim(buf, uint64(len(buf))+1) })
}
