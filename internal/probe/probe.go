package probe

import (
	"context"
	"time"
)

// Result holds the outcome of a single reachability probe.
type Result struct {
	Success   bool
	LatencyMS float64
	Message   string
}

// Checker performs one probe against a host. Implementations must honor ctx
// and report every failure mode (timeout, transport error, no reply) through
// Success=false rather than blocking or panicking.
type Checker interface {
	Check(ctx context.Context, host string) Result
}

func sinceMS(start time.Time) float64 {
	return time.Since(start).Seconds() * 1000
}
