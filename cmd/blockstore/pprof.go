package main

import (
	"context"
	"fmt"

	profilerconfig "github.com/nspcc-dev/neofs-blockstore/cmd/blockstore/config/profiler"
	httputil "github.com/nspcc-dev/neofs-blockstore/pkg/util/http"
	"go.uber.org/zap"
)

func initProfiler(c *cfg) {
	if !profilerconfig.Enabled(c.appCfg) {
		c.log.Info("pprof is disabled")
		return
	}

	var prm httputil.HTTPSrvPrm

	prm.Address = profilerconfig.Address(c.appCfg)
	prm.Handler = httputil.Handler()

	srv := httputil.New(prm,
		httputil.WithShutdownTimeout(
			profilerconfig.ShutdownTimeout(c.appCfg),
		),
	)

	c.workers = append(c.workers, newWorkerFromFunc(func(context.Context) {
		c.log.Info("start pprof service", zap.String("address", prm.Address))

		err := srv.Serve()
		if err != nil {
			c.internalError(fmt.Errorf("pprof service: %w", err))
		}
	}))

	c.closers = append(c.closers, func() {
		c.log.Debug("shutting down profiling service")

		err := srv.Shutdown()
		if err != nil {
			c.log.Debug("could not shutdown pprof server",
				zap.Error(err),
			)
		}

		c.log.Debug("profiling service has been stopped")
	})
}
