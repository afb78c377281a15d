package main

import (
	"context"
	"fmt"

	grpcconfig "github.com/nspcc-dev/neofs-blockstore/cmd/blockstore/config/grpc"
	"github.com/nspcc-dev/neofs-blockstore/cmd/internal/cmderr"
	"github.com/nspcc-dev/neofs-blockstore/pkg/network"
	"github.com/nspcc-dev/neofs-blockstore/pkg/services/blockstore"
	blockstoreSvc "github.com/nspcc-dev/neofs-blockstore/pkg/services/blockstore/server"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func initGRPC(c *cfg) error {
	var addr network.Address

	err := addr.FromString(grpcconfig.Endpoint(c.appCfg))
	if err != nil {
		return cmderr.Wrap(cmderr.CodeConfig, fmt.Errorf("invalid gRPC endpoint: %w", err))
	}

	lis, err := network.Listen(addr)
	if err != nil {
		return fmt.Errorf("could not listen gRPC endpoint: %w", err)
	}

	c.grpcAddr = lis.Addr()

	maxMsgSize := grpcconfig.MaxMessageSize(c.appCfg)

	srv := grpc.NewServer(
		blockstore.ServerOption(),
		grpc.MaxRecvMsgSize(maxMsgSize),
		grpc.MaxSendMsgSize(maxMsgSize),
	)

	blockstore.RegisterFileServiceServer(srv, blockstoreSvc.New(c.volume,
		blockstoreSvc.WithLogger(c.log.With(zap.String("component", "gRPC"))),
	))

	c.health = health.NewServer()
	healthpb.RegisterHealthServer(srv, c.health)

	c.workers = append(c.workers, newWorkerFromFunc(func(context.Context) {
		c.log.Info("start listening gRPC endpoint",
			zap.Stringer("endpoint", c.grpcAddr),
			zap.Int("max_message_size", maxMsgSize),
		)

		err := srv.Serve(lis)
		if err != nil {
			c.internalError(fmt.Errorf("gRPC server: %w", err))
		}
	}))

	c.closers = append(c.closers, func() {
		c.log.Info("stopping gRPC server...")

		c.health.Shutdown()
		srv.GracefulStop()

		c.log.Info("gRPC server stopped successfully")
	})

	return nil
}
