package grpcconfig_test

import (
	"testing"

	"github.com/nspcc-dev/neofs-blockstore/cmd/blockstore/config"
	grpcconfig "github.com/nspcc-dev/neofs-blockstore/cmd/blockstore/config/grpc"
	configtest "github.com/nspcc-dev/neofs-blockstore/cmd/blockstore/config/test"
	"github.com/stretchr/testify/require"
)

func TestGRPCSection(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		emptyConfig := configtest.EmptyConfig()

		require.Equal(t, grpcconfig.EndpointDefault, grpcconfig.Endpoint(emptyConfig))
		require.Equal(t, grpcconfig.MaxMessageSizeDefault, grpcconfig.MaxMessageSize(emptyConfig))
	})

	const path = "../../../../config/example/blockstore"

	var fileConfigTest = func(c *config.Config) {
		require.Equal(t, "127.0.0.1:50051", grpcconfig.Endpoint(c))
		require.Equal(t, 32<<20, grpcconfig.MaxMessageSize(c))
	}

	configtest.ForEachFileType(path, fileConfigTest)

	t.Run("ENV", func(t *testing.T) {
		configtest.ForEnvFileType(t, path, fileConfigTest)
	})

	t.Run("plain number", func(t *testing.T) {
		c := configtest.FromMap(t, map[string]any{
			"grpc": map[string]any{"max_message_size": 1024},
		})
		require.Equal(t, 1024, grpcconfig.MaxMessageSize(c))
	})
}
