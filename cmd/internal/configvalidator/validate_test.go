package configvalidator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testSection struct {
	Address string        `mapstructure:"address"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type testConfig struct {
	Name    string            `mapstructure:"name"`
	Section testSection       `mapstructure:"section"`
	Labels  map[string]string `mapstructure:"labels"`
	Plain   int
}

func TestCheckForUnknownFields(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m := map[string]any{
			"name": "test",
			"section": map[string]any{
				"address": "localhost:8080",
				"timeout": "5s",
			},
			"labels": map[string]any{"any": "value"},
			"Plain":  1,
		}
		require.NoError(t, CheckForUnknownFields(m, testConfig{}))
		require.NoError(t, CheckForUnknownFields(m, &testConfig{}))
	})

	for name, m := range map[string]map[string]any{
		"top level": {"unknown": 1},
		"nested":    {"section": map[string]any{"unknown": 1}},
		"map in place of value": {
			"name": map[string]any{"key": "value"},
		},
		"value in place of section": {"section": "value"},
	} {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, CheckForUnknownFields(m, testConfig{}), ErrUnknownField)
		})
	}

	t.Run("path", func(t *testing.T) {
		err := CheckForUnknownFields(map[string]any{
			"section": map[string]any{"port": 1},
		}, testConfig{})
		require.ErrorContains(t, err, "section.port")
	})
}
