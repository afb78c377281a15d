package storageconfig_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/nspcc-dev/neofs-blockstore/cmd/blockstore/config"
	storageconfig "github.com/nspcc-dev/neofs-blockstore/cmd/blockstore/config/storage"
	configtest "github.com/nspcc-dev/neofs-blockstore/cmd/blockstore/config/test"
	"github.com/stretchr/testify/require"
)

func TestStorageSection(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		emptyConfig := configtest.EmptyConfig()

		require.Equal(t, storageconfig.PathDefault, storageconfig.Path(emptyConfig))
		require.True(t, storageconfig.DirectIO(emptyConfig))
		require.Equal(t, storageconfig.BackendDefault, storageconfig.Backend(emptyConfig))

		ring := storageconfig.Ring(emptyConfig)
		require.EqualValues(t, storageconfig.RingEntriesDefault, ring.Entries())
		require.Equal(t, storageconfig.RingSlowThresholdDefault, ring.SlowThreshold())

		fallback := storageconfig.Fallback(emptyConfig)
		require.Equal(t, storageconfig.FallbackWorkersDefault, fallback.Workers())
		require.Equal(t, storageconfig.FallbackSlowThresholdDefault, fallback.SlowThreshold())
	})

	const path = "../../../../config/example/blockstore"

	var fileConfigTest = func(c *config.Config) {
		require.Equal(t, "/srv/blockstore/data.bin", storageconfig.Path(c))
		require.False(t, storageconfig.DirectIO(c))
		require.Equal(t, "threadpool", storageconfig.Backend(c))

		ring := storageconfig.Ring(c)
		require.EqualValues(t, 512, ring.Entries())
		require.Equal(t, 20*time.Millisecond, ring.SlowThreshold())

		fallback := storageconfig.Fallback(c)
		require.Equal(t, 64, fallback.Workers())
		require.Equal(t, 200*time.Millisecond, fallback.SlowThreshold())
	}

	configtest.ForEachFileType(path, fileConfigTest)

	t.Run("ENV", func(t *testing.T) {
		configtest.ForEnvFileType(t, path, fileConfigTest)
	})

	t.Run("home directory", func(t *testing.T) {
		home, err := homedir.Dir()
		if err != nil {
			t.Skipf("no home directory: %v", err)
		}

		c := configtest.FromMap(t, map[string]any{
			"storage": map[string]any{"path": "~/blockstore/data.bin"},
		})
		require.Equal(t, filepath.Join(home, "blockstore", "data.bin"), storageconfig.Path(c))
	})

	t.Run("explicit direct I/O", func(t *testing.T) {
		c := configtest.FromMap(t, map[string]any{
			"storage": map[string]any{"direct_io": true},
		})
		require.True(t, storageconfig.DirectIO(c))
	})
}
