package main

import (
	"github.com/nspcc-dev/neofs-blockstore/pkg/services/blockstore"
	"go.uber.org/zap"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// healthStatus is a numeric server state exported in metrics.
type healthStatus int32

const (
	healthUndefined healthStatus = iota
	healthStarting
	healthReady
	healthShuttingDown
)

func (s healthStatus) String() string {
	switch s {
	case healthStarting:
		return "STARTING"
	case healthReady:
		return "READY"
	case healthShuttingDown:
		return "SHUTTING_DOWN"
	default:
		return "UNDEFINED"
	}
}

func (c *cfg) setHealth(s healthStatus) {
	if c.metrics != nil {
		c.metrics.SetHealth(int32(s))
	}

	if c.health != nil {
		st := healthpb.HealthCheckResponse_NOT_SERVING
		if s == healthReady {
			st = healthpb.HealthCheckResponse_SERVING
		}

		c.health.SetServingStatus("", st)
		c.health.SetServingStatus(blockstore.ServiceName, st)
	}

	c.log.Debug("health status changed", zap.Stringer("status", s))
}
