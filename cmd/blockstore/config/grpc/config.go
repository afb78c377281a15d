package grpcconfig

import (
	"github.com/nspcc-dev/neofs-blockstore/cmd/blockstore/config"
)

const (
	subsection = "grpc"

	// EndpointDefault is a default address the server listens on.
	EndpointDefault = "[::1]:50051"

	// MaxMessageSizeDefault is a default limit of the request and response
	// size.
	MaxMessageSizeDefault = 64 << 20
)

// Endpoint returns the value of "endpoint" config parameter
// from "grpc" section.
//
// Returns EndpointDefault if the value is not set.
func Endpoint(c *config.Config) string {
	v := config.StringSafe(c.Sub(subsection), "endpoint")
	if v != "" {
		return v
	}

	return EndpointDefault
}

// MaxMessageSize returns the value of "max_message_size" config parameter
// from "grpc" section. Value may have size suffix (e.g. "64M").
//
// Returns MaxMessageSizeDefault if the value is not positive.
func MaxMessageSize(c *config.Config) int {
	v := config.SizeInBytesSafe(c.Sub(subsection), "max_message_size")
	if v > 0 && v <= 1<<31-1 {
		return int(v)
	}

	return MaxMessageSizeDefault
}
