package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/cheggaaa/pb"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neofs-blockstore/cmd/internal/cmderr"
	"github.com/nspcc-dev/neofs-blockstore/pkg/services/blockstore"
	"github.com/nspcc-dev/neofs-blockstore/pkg/util"
	"github.com/nspcc-dev/neofs-blockstore/pkg/util/rand"
	"github.com/spf13/cobra"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"golang.org/x/term"
)

const (
	countFlag       = "count"
	concurrencyFlag = "concurrency"
	sizeFlag        = "size"
	noProgressFlag  = "no-progress"

	// maxReportedErrors limits number of errors kept per benchmark phase.
	maxReportedErrors = 10
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure throughput of a running server",
	Long: `Measure throughput of a running server.

Writes the given number of random payloads under random UUID identifiers
concurrently, then reads all of them back in random order and verifies the
content. Progress bar is shown when stdout is a terminal.`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	fs := benchCmd.Flags()

	initRPCFlags(fs)
	fs.Int(countFlag, 1000, "Number of payloads to write")
	fs.Int(concurrencyFlag, 16, "Number of requests in flight")
	fs.Int(sizeFlag, 4096, "Payload size in bytes")
	fs.Bool(noProgressFlag, false, "Do not show progress bar")
}

var errPayloadMismatch = errors.New("payload mismatch")

type benchPrm struct {
	count       int
	concurrency int
	size        int

	// progress is an output for progress bars, nil disables them.
	progress io.Writer
}

type phaseReport struct {
	name      string
	requests  int
	failed    int
	bytes     uint64
	elapsed   time.Duration
	latencies []time.Duration
}

func (r phaseReport) row() []string {
	perSec := func(v float64) string {
		if r.elapsed <= 0 {
			return "-"
		}
		return strconv.FormatFloat(v/r.elapsed.Seconds(), 'f', 1, 64)
	}

	return []string{
		r.name,
		strconv.Itoa(r.requests),
		strconv.Itoa(r.failed),
		r.elapsed.Round(time.Millisecond).String(),
		perSec(float64(r.requests - r.failed)),
		perSec(float64(r.bytes) / (1 << 20)),
		r.percentile(50).String(),
		r.percentile(99).String(),
	}
}

// percentile returns p-th percentile of the request latencies.
func (r phaseReport) percentile(p int) time.Duration {
	if len(r.latencies) == 0 {
		return 0
	}

	s := slices.Clone(r.latencies)
	slices.Sort(s)

	return s[(len(s)-1)*p/100].Round(time.Microsecond)
}

func runBench(cmd *cobra.Command, _ []string) error {
	var prm benchPrm

	prm.count, _ = cmd.Flags().GetInt(countFlag)
	prm.concurrency, _ = cmd.Flags().GetInt(concurrencyFlag)
	prm.size, _ = cmd.Flags().GetInt(sizeFlag)

	switch {
	case prm.count <= 0:
		return cmderr.Wrap(cmderr.CodeConfig, fmt.Errorf("invalid --%s value %d", countFlag, prm.count))
	case prm.concurrency <= 0:
		return cmderr.Wrap(cmderr.CodeConfig, fmt.Errorf("invalid --%s value %d", concurrencyFlag, prm.concurrency))
	case prm.size < 0:
		return cmderr.Wrap(cmderr.CodeConfig, fmt.Errorf("invalid --%s value %d", sizeFlag, prm.size))
	}

	noProgress, _ := cmd.Flags().GetBool(noProgressFlag)
	if !noProgress && term.IsTerminal(int(os.Stdout.Fd())) {
		prm.progress = cmd.OutOrStdout()
	}

	cc, err := dial(cmd)
	if err != nil {
		return err
	}
	defer cc.Close()

	reports, err := benchmark(cmd.Context(), blockstore.NewClient(cc), prm)

	out := newTable(cmd, "Phase", "Requests", "Failed", "Elapsed", "Req/s", "MiB/s", "p50", "p99")
	for i := range reports {
		out.Append(reports[i].row())
	}
	out.Render()

	return err
}

// benchmark writes prm.count random payloads and reads them back.
func benchmark(ctx context.Context, cli *blockstore.Client, prm benchPrm) ([]phaseReport, error) {
	ids := make([]string, prm.count)
	payloads := make([][]byte, prm.count)

	for i := range ids {
		ids[i] = uuid.NewString()
		payloads[i] = rand.Bytes(prm.size)
	}

	wRep, wErr := runPhase("write", prm, func(i int) (uint64, error) {
		resp, err := cli.WriteData(ctx, &blockstore.WriteRequest{
			RequestID: ids[i],
			Data:      payloads[i],
		})
		if err != nil {
			return 0, err
		}
		if !resp.Success {
			return 0, errors.New(resp.ErrorMessage)
		}
		return uint64(len(payloads[i])), nil
	})

	order := make([]int, prm.count)
	for i := range order {
		order[i] = i
	}
	rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	rRep, rErr := runPhase("read", prm, func(i int) (uint64, error) {
		n := order[i]

		resp, err := cli.ReadData(ctx, &blockstore.ReadRequest{RequestID: ids[n]})
		if err != nil {
			return 0, err
		}
		if !resp.Success {
			return 0, errors.New(resp.ErrorMessage)
		}
		if !bytes.Equal(resp.Data, payloads[n]) {
			return 0, errPayloadMismatch
		}
		return uint64(len(resp.Data)), nil
	})

	return []phaseReport{wRep, rRep}, multierr.Combine(wErr, rErr)
}

// runPhase executes op for every payload index on the pool of prm.concurrency
// workers. Returned error combines the first failures of op.
func runPhase(name string, prm benchPrm, op func(i int) (uint64, error)) (phaseReport, error) {
	rep := phaseReport{
		name:     name,
		requests: prm.count,
	}

	pool, err := util.NewBlockingPool(prm.concurrency, nil)
	if err != nil {
		return rep, err
	}
	defer pool.Release()

	var bar *pb.ProgressBar
	if prm.progress != nil {
		bar = pb.New(prm.count).Prefix(name + " ")
		bar.Output = prm.progress
		bar.ShowSpeed = true
		bar.Start()
	}

	var (
		wg     sync.WaitGroup
		failed atomic.Int64
		total  atomic.Uint64

		errMtx  sync.Mutex
		errs    error
		errSeen int

		latencies = make([]time.Duration, prm.count)
		submitted = prm.count
	)

	start := time.Now()

	for i := range prm.count {
		wg.Add(1)

		err := pool.Submit(func() {
			defer wg.Done()

			t := time.Now()
			n, err := op(i)
			latencies[i] = time.Since(t)

			if err != nil {
				failed.Inc()

				errMtx.Lock()
				if errSeen < maxReportedErrors {
					errs = multierr.Append(errs, fmt.Errorf("%s request #%d: %w", name, i, err))
				}
				errSeen++
				errMtx.Unlock()
			} else {
				total.Add(n)
			}

			if bar != nil {
				bar.Increment()
			}
		})
		if err != nil {
			wg.Done()
			failed.Add(int64(prm.count - i))

			errMtx.Lock()
			errs = multierr.Append(errs, fmt.Errorf("could not submit %s request: %w", name, err))
			errMtx.Unlock()

			submitted = i
			break
		}
	}

	wg.Wait()

	rep.elapsed = time.Since(start)
	rep.latencies = latencies[:submitted]
	rep.failed = int(failed.Load())
	rep.bytes = total.Load()

	if bar != nil {
		bar.Finish()
	}

	if rep.failed > 0 {
		return rep, fmt.Errorf("%d of %d %s requests failed: %w", rep.failed, rep.requests, name, errs)
	}

	return rep, nil
}
