package configtest

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nspcc-dev/neofs-blockstore/cmd/blockstore/config"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func fromFile(path string) *config.Config {
	var p config.Prm

	c, err := config.New(p,
		config.WithConfigFile(path),
	)
	if err != nil {
		panic(err)
	}

	return c
}

func forEachFile(paths []string, f func(*config.Config)) {
	for i := range paths {
		f(fromFile(paths[i]))
	}
}

// ForEachFileType passes configs read from next files:
//   - `<pref>.yaml`;
//   - `<pref>.json`.
func ForEachFileType(pref string, f func(*config.Config)) {
	forEachFile([]string{
		pref + ".yaml",
		pref + ".json",
	}, f)
}

// ForEnvFileType sets environment variables from `<pref>.env` file for the
// test duration and passes config read from the environment only.
func ForEnvFileType(t testing.TB, pref string, f func(*config.Config)) {
	file, err := os.Open(pref + ".env")
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	s := bufio.NewScanner(file)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		k, v, ok := strings.Cut(line, "=")
		require.True(t, ok, line)

		t.Setenv(k, strings.Trim(v, `"`))
	}
	require.NoError(t, s.Err())

	f(EmptyConfig())
}

// FromMap encodes m into temporary YAML file and reads config from it.
func FromMap(t testing.TB, m map[string]any) *config.Config {
	data, err := yaml.Marshal(m)
	require.NoError(t, err)

	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, data, 0o600))

	return fromFile(p)
}

// EmptyConfig returns config without any values and sections.
func EmptyConfig() *config.Config {
	var p config.Prm

	c, err := config.New(p)
	if err != nil {
		panic(err)
	}

	return c
}
