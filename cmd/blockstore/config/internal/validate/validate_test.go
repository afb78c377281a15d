package validate

import (
	"strings"
	"testing"

	"github.com/nspcc-dev/neofs-blockstore/cmd/internal/configvalidator"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func fromYAML(t *testing.T, s string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(s)))
	return v
}

func TestValidateStruct(t *testing.T) {
	for _, p := range []string{
		"../../../../../config/example/blockstore.yaml",
		"../../../../../config/example/blockstore.json",
	} {
		v := viper.New()
		v.SetConfigFile(p)
		require.NoError(t, v.ReadInConfig())
		require.NoError(t, ValidateStruct(v), p)
	}

	t.Run("unknown field", func(t *testing.T) {
		v := fromYAML(t, `
storage:
  path: /tmp/data.bin
  compress: true
`)
		require.ErrorIs(t, ValidateStruct(v), configvalidator.ErrUnknownField)
	})

	t.Run("invalid value", func(t *testing.T) {
		v := fromYAML(t, `
storage:
  ring:
    slow_threshold: forever
`)
		require.ErrorContains(t, ValidateStruct(v), "unable to decode config")
	})
}
