package volume

import "time"

// Metrics is a sink for Volume statistics.
type Metrics interface {
	// AddOp accounts finished operation.
	AddOp(op string, success bool, size uint64, d time.Duration)
	// SetCursor reports the current write position.
	SetCursor(off uint64)
	// SetEntries reports the number of committed payloads.
	SetEntries(n int)
	// AddWasted accounts space lost by failed writes.
	AddWasted(n uint64)
}

type noopMetrics struct{}

func (noopMetrics) AddOp(string, bool, uint64, time.Duration) {}
func (noopMetrics) SetCursor(uint64)                          {}
func (noopMetrics) SetEntries(int)                            {}
func (noopMetrics) AddWasted(uint64)                          {}
