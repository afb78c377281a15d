/*
Package selector opens blockio.Backend of the kind chosen in configuration.

In automatic mode io_uring is preferred and the thread pool implementation is
used when the ring can not be set up on the running system.
*/
package selector

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio/fallback"
	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio/ring"
	"go.uber.org/zap"
)

// Kind of the backend.
type Kind string

// Supported backend kinds.
const (
	KindAuto     Kind = "auto"
	KindRing     Kind = "io_uring"
	KindFallback Kind = "threadpool"
)

// ParseKind converts configuration value to Kind. Empty string means
// KindAuto.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case "":
		return KindAuto, nil
	case KindAuto, KindRing, KindFallback:
		return k, nil
	default:
		return "", fmt.Errorf("unknown block I/O backend %q", s)
	}
}

// Prm groups parameters of Open.
type Prm struct {
	Path     string
	Kind     Kind
	DirectIO bool

	Logger  *zap.Logger
	Metrics blockio.Metrics

	RingEntries       uint32
	RingSlowThreshold time.Duration

	FallbackWorkers       int
	FallbackSlowThreshold time.Duration
}

var (
	probeOnce sync.Once
	probeErr  error
)

// probe checks io_uring availability once per process.
func probe() error {
	probeOnce.Do(func() {
		probeErr = ring.Probe()
	})
	return probeErr
}

// Open opens the data file with the backend of requested kind.
func Open(prm Prm) (blockio.Backend, error) {
	l := prm.Logger
	if l == nil {
		l = zap.NewNop()
	}

	kind := prm.Kind
	if kind == "" {
		kind = KindAuto
	}

	switch kind {
	case KindRing:
		return openRing(prm, l)
	case KindFallback:
		return openFallback(prm, l)
	case KindAuto:
		err := probe()
		if err == nil {
			var b blockio.Backend

			b, err = openRing(prm, l)
			if err == nil {
				return b, nil
			}
			if !errors.Is(err, ring.ErrUnsupported) {
				return nil, err
			}
		}

		l.Info("io_uring is unavailable, using thread pool I/O", zap.Error(err))

		return openFallback(prm, l)
	default:
		return nil, fmt.Errorf("unknown block I/O backend %q", kind)
	}
}

func openRing(prm Prm, l *zap.Logger) (blockio.Backend, error) {
	opts := []ring.Option{
		ring.WithLogger(l),
		ring.WithDirectIO(prm.DirectIO),
		ring.WithEntries(prm.RingEntries),
	}
	if prm.Metrics != nil {
		opts = append(opts, ring.WithMetrics(prm.Metrics))
	}
	if prm.RingSlowThreshold > 0 {
		opts = append(opts, ring.WithSlowThreshold(prm.RingSlowThreshold))
	}

	b, err := ring.New(prm.Path, opts...)
	if err != nil {
		return nil, fmt.Errorf("open io_uring backend: %w", err)
	}
	return b, nil
}

func openFallback(prm Prm, l *zap.Logger) (blockio.Backend, error) {
	opts := []fallback.Option{
		fallback.WithLogger(l),
		fallback.WithDirectIO(prm.DirectIO),
		fallback.WithWorkers(prm.FallbackWorkers),
	}
	if prm.Metrics != nil {
		opts = append(opts, fallback.WithMetrics(prm.Metrics))
	}
	if prm.FallbackSlowThreshold > 0 {
		opts = append(opts, fallback.WithSlowThreshold(prm.FallbackSlowThreshold))
	}

	b, err := fallback.New(prm.Path, opts...)
	if err != nil {
		return nil, fmt.Errorf("open thread pool backend: %w", err)
	}
	return b, nil
}
