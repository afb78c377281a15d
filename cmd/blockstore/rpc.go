package main

import (
	"context"
	"fmt"
	"time"

	grpcconfig "github.com/nspcc-dev/neofs-blockstore/cmd/blockstore/config/grpc"
	"github.com/nspcc-dev/neofs-blockstore/cmd/internal/cmderr"
	"github.com/nspcc-dev/neofs-blockstore/pkg/network"
	"github.com/nspcc-dev/neofs-blockstore/pkg/services/blockstore"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	endpointFlag = "endpoint"
	timeoutFlag  = "timeout"

	defaultDialTimeout = 5 * time.Second
)

func initRPCFlags(fs *pflag.FlagSet) {
	fs.StringP(endpointFlag, "r", "", "Server address (as 'multiaddr' or '<host>:<port>'), taken from the configuration if not set")
	fs.Duration(timeoutFlag, defaultDialTimeout, "Timeout for the connection establishment")
}

// endpoint returns server address from the command flags or, if not set,
// from the configuration.
func endpoint(cmd *cobra.Command) (network.Address, error) {
	var addr network.Address

	s, _ := cmd.Flags().GetString(endpointFlag)
	if s == "" {
		path, _ := cmd.Flags().GetString(configFlag)

		appCfg, err := loadConfig(path)
		if err != nil {
			return addr, err
		}

		s = grpcconfig.Endpoint(appCfg)
	}

	err := addr.FromString(s)
	if err != nil {
		return addr, cmderr.Wrap(cmderr.CodeConfig, fmt.Errorf("invalid endpoint %q: %w", s, err))
	}

	return addr, nil
}

// dial blocks until the connection to the server specified in the command
// flags is established.
func dial(cmd *cobra.Command) (*grpc.ClientConn, error) {
	addr, err := endpoint(cmd)
	if err != nil {
		return nil, err
	}

	timeout, _ := cmd.Flags().GetDuration(timeoutFlag)

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	return dialAddress(ctx, addr.HostAddr())
}

func dialAddress(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	cc, err := grpc.DialContext(ctx, addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		blockstore.DialOption(),
		grpc.WithBlock(),
	)
	if err != nil {
		return nil, cmderr.Wrap(cmderr.CodeUnavailable, fmt.Errorf("could not connect to %s: %w", addr, err))
	}

	return cc, nil
}

func newTable(cmd *cobra.Command, header ...string) *tablewriter.Table {
	out := tablewriter.NewWriter(cmd.OutOrStdout())
	out.SetHeader(header)
	out.SetAutoWrapText(false)
	out.SetAlignment(tablewriter.ALIGN_LEFT)

	return out
}
