// Package summary reports scan results and statistics.
package summary

import (
	"time"
)

// Logger defines the minimal logging interface required.
type Logger interface {
	Info(format string, args ...interface{})
}

// DisplayResults shows the end results of a glob run.
func DisplayResults(logger Logger, matched int64, duration time.Duration, quiet bool) {
	if quiet {
		return
	}
	logger.Info("Matched %d entries.", matched)
	logger.Info("Completed in %v.", duration.Round(time.Millisecond))
}
