package storageconfig

import (
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/nspcc-dev/neofs-blockstore/cmd/blockstore/config"
)

const (
	subsection = "storage"

	// PathDefault is a default path to the data file.
	PathDefault = "data.bin"

	// BackendDefault is a default block I/O backend kind.
	BackendDefault = "auto"

	// RingEntriesDefault is a default size of io_uring submission queue.
	RingEntriesDefault = 256

	// RingSlowThresholdDefault is a default duration after which io_uring
	// operation is reported as slow.
	RingSlowThresholdDefault = 50 * time.Millisecond

	// FallbackWorkersDefault is a default size of thread pool.
	FallbackWorkersDefault = 2048

	// FallbackSlowThresholdDefault is a default duration after which thread
	// pool operation is reported as slow.
	FallbackSlowThresholdDefault = 100 * time.Millisecond
)

// Path returns the value of "path" config parameter from "storage" section
// with expanded home directory.
//
// Returns PathDefault if the value is not set.
func Path(c *config.Config) string {
	v := config.StringSafe(c.Sub(subsection), "path")
	if v == "" {
		return PathDefault
	}

	p, err := homedir.Expand(v)
	if err != nil {
		return v
	}

	return p
}

// DirectIO returns the value of "direct_io" config parameter from "storage"
// section.
//
// Returns true if the value is missing.
func DirectIO(c *config.Config) bool {
	s := c.Sub(subsection)
	if s.Value("direct_io") == nil {
		return true
	}

	return config.BoolSafe(s, "direct_io")
}

// Backend returns the value of "backend" config parameter from "storage"
// section.
//
// Returns BackendDefault if the value is not set.
func Backend(c *config.Config) string {
	v := config.StringSafe(c.Sub(subsection), "backend")
	if v != "" {
		return v
	}

	return BackendDefault
}

// RingConfig is a wrapper over "ring" config section which provides access
// to io_uring backend configuration.
type RingConfig config.Config

// Ring returns "ring" subsection of the "storage" section.
func Ring(c *config.Config) *RingConfig {
	return (*RingConfig)(c.Sub(subsection).Sub("ring"))
}

// Entries returns the value of "entries" config parameter.
//
// Returns RingEntriesDefault if the value is not positive or too big.
func (x *RingConfig) Entries() uint32 {
	v := config.UintSafe((*config.Config)(x), "entries")
	if v > 0 && v <= 1<<15 {
		return uint32(v)
	}

	return RingEntriesDefault
}

// SlowThreshold returns the value of "slow_threshold" config parameter.
//
// Returns RingSlowThresholdDefault if the value is not positive.
func (x *RingConfig) SlowThreshold() time.Duration {
	v := config.DurationSafe((*config.Config)(x), "slow_threshold")
	if v > 0 {
		return v
	}

	return RingSlowThresholdDefault
}

// FallbackConfig is a wrapper over "fallback" config section which provides
// access to thread pool backend configuration.
type FallbackConfig config.Config

// Fallback returns "fallback" subsection of the "storage" section.
func Fallback(c *config.Config) *FallbackConfig {
	return (*FallbackConfig)(c.Sub(subsection).Sub("fallback"))
}

// Workers returns the value of "workers" config parameter.
//
// Returns FallbackWorkersDefault if the value is not positive.
func (x *FallbackConfig) Workers() int {
	v := config.UintSafe((*config.Config)(x), "workers")
	if v > 0 && v <= 1<<20 {
		return int(v)
	}

	return FallbackWorkersDefault
}

// SlowThreshold returns the value of "slow_threshold" config parameter.
//
// Returns FallbackSlowThresholdDefault if the value is not positive.
func (x *FallbackConfig) SlowThreshold() time.Duration {
	v := config.DurationSafe((*config.Config)(x), "slow_threshold")
	if v > 0 {
		return v
	}

	return FallbackSlowThresholdDefault
}
