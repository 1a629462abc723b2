package signalhandler

import (
	"context"
	"os/signal"
	"runtime"
	"syscall"
)

// SetupContext returns a context that is canceled on SIGINT or SIGTERM, so
// a running batch stops dispatching new pairs and finishes in-flight
// comparisons cleanly.
func SetupContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// GetOptimalProcs returns the number of comparison workers to run. OpenCV
// calls go through CGo, where oversubscribing cores degrades rather than
// helps, so this stays below the full CPU count.
func GetOptimalProcs() int {
	maxProcs := (runtime.NumCPU() * 3) / 4
	if maxProcs < 1 {
		maxProcs = 1
	}
	return maxProcs
}
