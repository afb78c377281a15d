package blockio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio"
	"github.com/stretchr/testify/require"
)

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("create", func(t *testing.T) {
		p := filepath.Join(dir, "data.bin")

		f, err := blockio.OpenFile(p, false)
		require.NoError(t, err)
		t.Cleanup(func() { _ = f.Close() })

		fi, err := os.Stat(p)
		require.NoError(t, err)
		require.Zero(t, fi.Size())
		require.Equal(t, blockio.FilePerm, fi.Mode().Perm()&blockio.FilePerm)
	})

	t.Run("existing", func(t *testing.T) {
		p := filepath.Join(dir, "existing.bin")
		require.NoError(t, os.WriteFile(p, []byte("hello"), 0o600))

		f, err := blockio.OpenFile(p, false)
		require.NoError(t, err)
		t.Cleanup(func() { _ = f.Close() })

		info, err := blockio.StatFile(f)
		require.NoError(t, err)
		require.EqualValues(t, 5, info.Size)
		require.Equal(t, p, info.Path)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := blockio.OpenFile(dir, false)
		require.Error(t, err)
	})
}

func TestDupFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "data.bin")

	f, err := blockio.OpenFile(p, false)
	require.NoError(t, err)

	d, err := blockio.DupFile(f)
	require.NoError(t, err)
	require.NotEqual(t, f.Fd(), d.Fd())
	require.Equal(t, f.Name(), d.Name())

	require.NoError(t, f.Close())

	_, err = d.WriteAt([]byte("still open"), 0)
	require.NoError(t, err)

	buf := make([]byte, 10)
	_, err = d.ReadAt(buf, 0)
	require.NoError(t, err)
	require.Equal(t, "still open", string(buf))
	require.NoError(t, d.Close())
}
