package main

import (
	"context"
	"fmt"
	"net/http"

	metricsconfig "github.com/nspcc-dev/neofs-blockstore/cmd/blockstore/config/metrics"
	"github.com/nspcc-dev/neofs-blockstore/misc"
	"github.com/nspcc-dev/neofs-blockstore/pkg/metrics"
	httputil "github.com/nspcc-dev/neofs-blockstore/pkg/util/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func initMetrics(c *cfg) {
	if !metricsconfig.Enabled(c.appCfg) {
		c.log.Info("prometheus is disabled")
		return
	}

	c.metrics = metrics.NewStorageMetrics(c.registerer, misc.Version)

	var prm httputil.HTTPSrvPrm

	prm.Address = metricsconfig.Address(c.appCfg)
	prm.Handler = metricsHandler(c.registerer)

	srv := httputil.New(prm,
		httputil.WithShutdownTimeout(
			metricsconfig.ShutdownTimeout(c.appCfg),
		),
	)

	c.workers = append(c.workers, newWorkerFromFunc(func(context.Context) {
		c.log.Info("start prometheus service", zap.String("address", prm.Address))

		err := srv.Serve()
		if err != nil {
			c.internalError(fmt.Errorf("prometheus service: %w", err))
		}
	}))

	c.closers = append(c.closers, func() {
		c.log.Debug("shutting down prometheus service")

		err := srv.Shutdown()
		if err != nil {
			c.log.Debug("could not shutdown prometheus server",
				zap.Error(err),
			)
		}

		c.log.Debug("prometheus service has been stopped")
	})
}

// metricsHandler serves metrics collected by reg. Default registerer is
// served with process and Go runtime collectors.
func metricsHandler(reg prometheus.Registerer) http.Handler {
	if g, ok := reg.(prometheus.Gatherer); ok && reg != prometheus.DefaultRegisterer {
		return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	}

	return promhttp.Handler()
}
