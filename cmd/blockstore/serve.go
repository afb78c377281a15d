package main

import (
	"github.com/nspcc-dev/neofs-blockstore/misc"
	"github.com/nspcc-dev/neofs-blockstore/pkg/util/grace"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the block storage server",
	Long: `Run the block storage server.

The server listens on the configured gRPC endpoint until SIGINT or SIGTERM is
received. SIGHUP rereads the configuration and applies the logger level.`,
	Args: cobra.NoArgs,
	RunE: serve,
}

func serve(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString(configFlag)

	c, err := initCfg(grace.NewGracefulContext(nil), path)
	if err != nil {
		return err
	}

	err = initApp(c)
	if err != nil {
		c.shutdown()
		return err
	}

	bootUp(c)

	c.log.Info("block storage server is ready",
		zap.String("version", misc.Version),
		zap.Stringer("endpoint", c.grpcAddr),
	)

	err = c.wait()

	c.shutdown()

	return err
}

func initApp(c *cfg) error {
	initMetrics(c)
	initProfiler(c)

	c.setHealth(healthStarting)

	err := initStorage(c)
	if err != nil {
		return err
	}

	err = initGRPC(c)
	if err != nil {
		return err
	}

	initReloader(c)

	return nil
}

func bootUp(c *cfg) {
	startWorkers(c)
	c.setHealth(healthReady)
}
