package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nspcc-dev/neofs-blockstore/cmd/blockstore/config"
	configtest "github.com/nspcc-dev/neofs-blockstore/cmd/blockstore/config/test"
	"github.com/nspcc-dev/neofs-blockstore/cmd/internal/cmderr"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/volume"
	"github.com/nspcc-dev/neofs-blockstore/pkg/services/blockstore"
	"github.com/nspcc-dev/neofs-blockstore/pkg/util/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func testConfigMap(t *testing.T) map[string]any {
	return map[string]any{
		"logger": map[string]any{"level": "warn"},
		"grpc":   map[string]any{"endpoint": "127.0.0.1:0"},
		"storage": map[string]any{
			"path":      filepath.Join(t.TempDir(), "data.bin"),
			"direct_io": false,
			"backend":   "threadpool",
			"fallback":  map[string]any{"workers": 16},
		},
		"prometheus": map[string]any{
			"enabled": true,
			"address": "127.0.0.1:0",
		},
	}
}

func newTestCfg(t *testing.T, appCfg *config.Config) *cfg {
	prm, err := loggerPrm(appCfg)
	require.NoError(t, err)

	l, err := logger.NewLogger(prm)
	require.NoError(t, err)

	c := newCfg(context.Background(), "", appCfg, l)
	c.registerer = prometheus.NewPedanticRegistry()

	return c
}

func startTestServer(t *testing.T) (*cfg, *grpc.ClientConn) {
	c := newTestCfg(t, configtest.FromMap(t, testConfigMap(t)))

	require.NoError(t, initApp(c))
	bootUp(c)
	t.Cleanup(c.shutdown)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cc, err := dialAddress(ctx, c.grpcAddr.String())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cc.Close() })

	return c, cc
}

func TestExercise(t *testing.T) {
	c, cc := startTestServer(t)
	cli := blockstore.NewClient(cc)

	res := exercise(context.Background(), cli)
	require.Equal(t, []exerciseResult{
		{Op: "write", RequestID: "test-1", OK: true, Details: "offset = 0"},
		{Op: "write", RequestID: "test-2", OK: true, Details: "offset = 512"},
		{Op: "write", RequestID: "test-3", OK: true, Details: "offset = 1024"},
		{Op: "read", RequestID: "test-1", OK: true, Details: `"Hello, World!"`},
		{Op: "read", RequestID: "test-2", OK: true, Details: `"This is a test message"`},
		{Op: "read", RequestID: "test-3", OK: true, Details: `"Another test message"`},
		{Op: "read", RequestID: unknownID, Details: "NotFound: request ID not found"},
	}, res)

	require.EqualValues(t, 1536, c.volume.Info().Cursor)

	t.Run("repeat", func(t *testing.T) {
		res := exercise(context.Background(), cli)
		require.Len(t, res, 7)

		for _, r := range res[:3] {
			require.False(t, r.OK)
			require.Contains(t, r.Details, "already exists")
		}
		for _, r := range res[3:6] {
			require.True(t, r.OK)
		}
		require.EqualValues(t, 1536, c.volume.Info().Cursor)
	})
}

func TestBenchmark(t *testing.T) {
	c, cc := startTestServer(t)

	reports, err := benchmark(context.Background(), blockstore.NewClient(cc), benchPrm{
		count:       50,
		concurrency: 8,
		size:        1000,
		progress:    io.Discard,
	})
	require.NoError(t, err)
	require.Len(t, reports, 2)

	for _, r := range reports {
		require.Equal(t, 50, r.requests)
		require.Zero(t, r.failed)
		require.EqualValues(t, 50*1000, r.bytes)
		require.Len(t, r.latencies, 50)
		require.Len(t, r.row(), 8)
	}

	info := c.volume.Info()
	require.Equal(t, 50, info.Entries)
	require.EqualValues(t, 50*1024, info.Cursor)
}

func TestRunPhase(t *testing.T) {
	rep, err := runPhase("test", benchPrm{count: 40, concurrency: 4}, func(i int) (uint64, error) {
		if i%2 == 1 {
			return 0, errPayloadMismatch
		}
		return 10, nil
	})
	require.ErrorIs(t, err, errPayloadMismatch)
	require.ErrorContains(t, err, "20 of 40 test requests failed")
	require.Equal(t, 20, rep.failed)
	require.EqualValues(t, 200, rep.bytes)
}

func TestPercentile(t *testing.T) {
	var r phaseReport
	require.Zero(t, r.percentile(50))

	for i := 100; i > 0; i-- {
		r.latencies = append(r.latencies, time.Duration(i)*time.Millisecond)
	}

	require.Equal(t, 50*time.Millisecond, r.percentile(50))
	require.Equal(t, 99*time.Millisecond, r.percentile(99))
	require.Equal(t, 100*time.Millisecond, r.percentile(100))
}

func TestHealth(t *testing.T) {
	c, cc := startTestServer(t)

	resp, err := healthpb.NewHealthClient(cc).Check(context.Background(), &healthpb.HealthCheckRequest{
		Service: blockstore.ServiceName,
	})
	require.NoError(t, err)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	g, ok := c.registerer.(prometheus.Gatherer)
	require.True(t, ok)

	mfs, err := g.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range mfs {
		if mf.GetName() == "blockstore_state_health" {
			require.EqualValues(t, healthReady, mf.GetMetric()[0].GetGauge().GetValue())
			found = true
		}
	}
	require.True(t, found)
}

func TestMetrics(t *testing.T) {
	c, cc := startTestServer(t)

	_ = exercise(context.Background(), blockstore.NewClient(cc))

	n, err := testutil.GatherAndCount(c.registerer.(prometheus.Gatherer),
		"blockstore_volume_ops_total",
		"blockstore_volume_entries",
	)
	require.NoError(t, err)
	// write and read series plus the entries gauge
	require.Equal(t, 3, n)
}

func TestShutdown(t *testing.T) {
	c := newTestCfg(t, configtest.FromMap(t, testConfigMap(t)))

	require.NoError(t, initApp(c))
	bootUp(c)

	c.internalError(errors.New("any"))
	require.EqualError(t, c.wait(), "any")

	c.shutdown()

	_, err := c.volume.Write("id", []byte("data"))
	require.ErrorIs(t, err, volume.ErrClosed)
}

func TestInitApp(t *testing.T) {
	t.Run("invalid backend", func(t *testing.T) {
		m := testConfigMap(t)
		m["storage"].(map[string]any)["backend"] = "nvme"

		c := newTestCfg(t, configtest.FromMap(t, m))
		defer c.shutdown()

		err := initApp(c)
		require.Error(t, err)
		require.Equal(t, cmderr.CodeConfig, cmderr.ExitCode(err))
	})

	t.Run("data file is a directory", func(t *testing.T) {
		m := testConfigMap(t)
		m["storage"].(map[string]any)["path"] = t.TempDir()

		c := newTestCfg(t, configtest.FromMap(t, m))
		defer c.shutdown()

		require.Error(t, initApp(c))
	})
}

func TestLoadConfig(t *testing.T) {
	_, err := loadConfig("../../config/example/blockstore.yaml")
	require.NoError(t, err)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Equal(t, cmderr.CodeConfig, cmderr.ExitCode(err))

	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("storage:\n  size: 1G\n"), 0o600))

	_, err = loadConfig(p)
	require.ErrorContains(t, err, "invalid configuration")
	require.Equal(t, cmderr.CodeConfig, cmderr.ExitCode(err))
}

func TestReloadConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("logger:\n  level: info\n"), 0o600))

	c, err := initCfg(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, zapcore.InfoLevel, c.log.Level())

	require.NoError(t, os.WriteFile(p, []byte("logger:\n  level: debug\n"), 0o600))
	c.reloadConfig()
	require.Equal(t, zapcore.DebugLevel, c.log.Level())

	require.NoError(t, os.WriteFile(p, []byte("logger:\n  level: verbose\n"), 0o600))
	c.reloadConfig()
	require.Equal(t, zapcore.DebugLevel, c.log.Level())
}

func TestEndpoint(t *testing.T) {
	newCmd := func(args ...string) *cobra.Command {
		cmd := &cobra.Command{}
		cmd.Flags().String(configFlag, "", "")
		initRPCFlags(cmd.Flags())
		require.NoError(t, cmd.Flags().Parse(args))
		return cmd
	}

	addr, err := endpoint(newCmd("--endpoint", "/ip4/10.0.0.1/tcp/8080"))
	require.NoError(t, err)
	require.Equal(t, "10.0.0.1:8080", addr.HostAddr())

	addr, err = endpoint(newCmd("--config", "../../config/example/blockstore.json"))
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:50051", addr.HostAddr())

	_, err = endpoint(newCmd("--endpoint", "not an address"))
	require.Equal(t, cmderr.CodeConfig, cmderr.ExitCode(err))
}

func TestVersion(t *testing.T) {
	buf := new(bytes.Buffer)

	command.SetOut(buf)
	command.SetArgs([]string{"--version"})
	t.Cleanup(func() {
		command.SetOut(os.Stdout)
		command.SetArgs(nil)
	})

	require.NoError(t, command.Execute())
	require.True(t, strings.HasPrefix(buf.String(), "NeoFS Block Storage\n"))
}
