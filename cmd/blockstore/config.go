package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/nspcc-dev/neofs-blockstore/cmd/blockstore/config"
	loggerconfig "github.com/nspcc-dev/neofs-blockstore/cmd/blockstore/config/logger"
	"github.com/nspcc-dev/neofs-blockstore/cmd/internal/cmderr"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/volume"
	"github.com/nspcc-dev/neofs-blockstore/pkg/metrics"
	"github.com/nspcc-dev/neofs-blockstore/pkg/util/logger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc/health"
)

type cfg struct {
	ctx    context.Context
	cancel context.CancelFunc

	configPath string
	appCfg     *config.Config

	log *logger.Logger

	registerer prometheus.Registerer
	metrics    *metrics.StorageMetrics

	volume *volume.Volume

	grpcAddr net.Addr
	health   *health.Server

	workers []worker
	closers []func()

	wg sync.WaitGroup

	internalErr chan error
}

// loadConfig reads configuration from the file (if any) and environment.
func loadConfig(path string) (*config.Config, error) {
	var opts []config.Option
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}

	appCfg, err := config.New(config.Prm{}, opts...)
	if err != nil {
		return nil, cmderr.Wrap(cmderr.CodeConfig, err)
	}

	if err := appCfg.Validate(); err != nil {
		return nil, cmderr.Wrap(cmderr.CodeConfig, fmt.Errorf("invalid configuration: %w", err))
	}

	return appCfg, nil
}

func loggerPrm(appCfg *config.Config) (*logger.Prm, error) {
	var prm logger.Prm

	err := prm.SetLevelString(loggerconfig.Level(appCfg))
	if err != nil {
		return nil, fmt.Errorf("invalid logger level: %w", err)
	}

	err = prm.SetEncoding(loggerconfig.Encoding(appCfg))
	if err != nil {
		return nil, fmt.Errorf("invalid logger encoding: %w", err)
	}

	return &prm, nil
}

func initCfg(ctx context.Context, path string) (*cfg, error) {
	appCfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}

	prm, err := loggerPrm(appCfg)
	if err != nil {
		return nil, cmderr.Wrap(cmderr.CodeConfig, err)
	}

	log, err := logger.NewLogger(prm)
	if err != nil {
		return nil, fmt.Errorf("could not create logger: %w", err)
	}

	return newCfg(ctx, path, appCfg, log), nil
}

func newCfg(ctx context.Context, path string, appCfg *config.Config, log *logger.Logger) *cfg {
	c := &cfg{
		configPath:  path,
		appCfg:      appCfg,
		log:         log,
		registerer:  prometheus.DefaultRegisterer,
		internalErr: make(chan error, 1),
	}

	c.ctx, c.cancel = context.WithCancel(ctx)

	return c
}

// internalError reports failure of a background service and initiates
// shutdown. Only the first error is kept.
func (c *cfg) internalError(err error) {
	select {
	case c.internalErr <- err:
	default:
		c.log.Error("background service failed", zap.Error(err))
	}
}

func (c *cfg) wait() error {
	select {
	case <-c.ctx.Done():
		return nil
	case err := <-c.internalErr:
		c.log.Error("internal error, shutting down", zap.Error(err))
		return err
	}
}

func (c *cfg) shutdown() {
	c.log.Info("shutting down the server...")

	c.setHealth(healthShuttingDown)
	c.cancel()

	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}

	c.wg.Wait()

	c.log.Info("server has been stopped")
	_ = c.log.Sync()
}

func initReloader(c *cfg) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGHUP)

	c.workers = append(c.workers, newWorkerFromFunc(func(ctx context.Context) {
		defer signal.Stop(ch)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ch:
				c.reloadConfig()
			}
		}
	}))
}

// reloadConfig rereads the configuration and applies values which can be
// changed at runtime. Currently, it is the logger level only.
func (c *cfg) reloadConfig() {
	c.log.Info("SIGHUP has been received, rereading configuration...")

	appCfg, err := loadConfig(c.configPath)
	if err != nil {
		c.log.Error("configuration reading", zap.Error(err))
		return
	}

	prm, err := loggerPrm(appCfg)
	if err != nil {
		c.log.Error("configuration reading", zap.Error(err))
		return
	}

	c.log.Reload(*prm)
	c.appCfg = appCfg

	c.log.Info("configuration has been reloaded successfully",
		zap.Stringer("log_level", c.log.Level()),
	)
}
