package main

import (
	"fmt"

	storageconfig "github.com/nspcc-dev/neofs-blockstore/cmd/blockstore/config/storage"
	"github.com/nspcc-dev/neofs-blockstore/cmd/internal/cmderr"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio/selector"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/volume"
	"go.uber.org/zap"
)

func initStorage(c *cfg) error {
	kind, err := selector.ParseKind(storageconfig.Backend(c.appCfg))
	if err != nil {
		return cmderr.Wrap(cmderr.CodeConfig, fmt.Errorf("invalid storage configuration: %w", err))
	}

	ring := storageconfig.Ring(c.appCfg)
	fallback := storageconfig.Fallback(c.appCfg)

	opts := []volume.Option{
		volume.WithLogger(c.log.With(zap.String("component", "storage volume"))),
		volume.WithPath(storageconfig.Path(c.appCfg)),
		volume.WithBackendKind(kind),
		volume.WithDirectIO(storageconfig.DirectIO(c.appCfg)),
		volume.WithRingParams(ring.Entries(), ring.SlowThreshold()),
		volume.WithFallbackParams(fallback.Workers(), fallback.SlowThreshold()),
	}

	if c.metrics != nil {
		opts = append(opts, volume.WithMetrics(c.metrics))
	}

	c.volume = volume.New(opts...)

	err = c.volume.Open()
	if err != nil {
		return fmt.Errorf("could not open storage volume: %w", err)
	}

	c.closers = append(c.closers, func() {
		c.log.Debug("closing storage volume")

		err := c.volume.Close()
		if err != nil {
			c.log.Error("could not close storage volume", zap.Error(err))
			return
		}

		c.log.Debug("storage volume has been closed")
	})

	info := c.volume.Info()

	c.log.Info("storage volume is ready",
		zap.String("path", info.Path),
		zap.String("backend", info.Backend),
		zap.Uint64("cursor", info.Cursor),
	)

	return nil
}
