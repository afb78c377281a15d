package main

import (
	"os"

	"github.com/nspcc-dev/neofs-blockstore/cmd/internal/cmderr"
	"github.com/nspcc-dev/neofs-blockstore/misc"
	"github.com/spf13/cobra"
)

const configFlag = "config"

var command = &cobra.Command{
	Use:   "blockstore",
	Short: "NeoFS Block Storage",
	Long: `NeoFS Block Storage is an append-only store of opaque payloads served over gRPC.

Payloads are written to a single data file with direct I/O, each one into its
own block-aligned range. Running without a subcommand starts the server.`,
	Args:          cobra.NoArgs,
	RunE:          entryPoint,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func entryPoint(cmd *cobra.Command, args []string) error {
	printVersion, _ := cmd.Flags().GetBool("version")
	if printVersion {
		cmd.Print(misc.BuildInfo("NeoFS Block Storage"))

		return nil
	}

	return serve(cmd, args)
}

func init() {
	// use stdout as default output for cmd.Print()
	command.SetOut(os.Stdout)
	command.Flags().Bool("version", false, "Application version")
	command.PersistentFlags().StringP(configFlag, "c", "", "Path to the configuration file")
	command.AddCommand(
		serveCmd,
		clientCmd,
		benchCmd,
	)
}

func main() {
	err := command.Execute()
	cmderr.ExitOnErr(err)
}
