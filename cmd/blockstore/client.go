package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nspcc-dev/neofs-blockstore/pkg/services/blockstore"
	"github.com/spf13/cobra"
	"google.golang.org/grpc/status"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Exercise a running server",
	Long: `Exercise a running server.

Writes three fixed payloads, reads them back and then reads an identifier
which has never been written. Results are printed as a table.`,
	Args: cobra.NoArgs,
	RunE: runClient,
}

func init() {
	initRPCFlags(clientCmd.Flags())
}

// exercisePayloads are written by the client command in order.
var exercisePayloads = []struct {
	id   string
	data string
}{
	{"test-1", "Hello, World!"},
	{"test-2", "This is a test message"},
	{"test-3", "Another test message"},
}

const unknownID = "unknown-id"

// exerciseResult describes a single call made by the client command.
type exerciseResult struct {
	Op        string
	RequestID string
	OK        bool
	Details   string
}

func (r exerciseResult) row() []string {
	return []string{r.Op, r.RequestID, strconv.FormatBool(r.OK), r.Details}
}

func runClient(cmd *cobra.Command, _ []string) error {
	cc, err := dial(cmd)
	if err != nil {
		return err
	}
	defer cc.Close()

	res := exercise(cmd.Context(), blockstore.NewClient(cc))

	out := newTable(cmd, "Operation", "Request ID", "Success", "Details")
	for i := range res {
		out.Append(res[i].row())
	}
	out.Render()

	return nil
}

// exercise writes exercisePayloads, reads them back and reads unknownID.
// Failures are reported in results, not returned.
func exercise(ctx context.Context, cli *blockstore.Client) []exerciseResult {
	res := make([]exerciseResult, 0, 2*len(exercisePayloads)+1)

	for _, p := range exercisePayloads {
		r := exerciseResult{Op: "write", RequestID: p.id}

		resp, err := cli.WriteData(ctx, &blockstore.WriteRequest{
			RequestID: p.id,
			Data:      []byte(p.data),
		})
		switch {
		case err != nil:
			r.Details = statusDetails(err)
		case !resp.Success:
			r.Details = resp.ErrorMessage
		default:
			r.OK = true
			r.Details = fmt.Sprintf("offset = %d", resp.Offset)
		}

		res = append(res, r)
	}

	ids := make([]string, 0, len(exercisePayloads)+1)
	for _, p := range exercisePayloads {
		ids = append(ids, p.id)
	}
	ids = append(ids, unknownID)

	for _, id := range ids {
		r := exerciseResult{Op: "read", RequestID: id}

		resp, err := cli.ReadData(ctx, &blockstore.ReadRequest{RequestID: id})
		switch {
		case err != nil:
			r.Details = statusDetails(err)
		case !resp.Success:
			r.Details = resp.ErrorMessage
		default:
			r.OK = true
			r.Details = strconv.Quote(string(resp.Data))
		}

		res = append(res, r)
	}

	return res
}

func statusDetails(err error) string {
	st := status.Convert(err)
	return fmt.Sprintf("%s: %s", st.Code(), st.Message())
}
