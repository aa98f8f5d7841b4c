package main

import (
	"os"

	"github.com/charmbracelet/log"
)

// newLogger writes to stderr so command output on stdout stays clean.
func newLogger(level log.Level, debug bool) *log.Logger {
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "yaniv",
	})
}
