// Package logging configures the host-side logger. The graphics core
// never imports this; it takes a gfx.Logger and the host passes one in.
package logging

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New returns a leveled logger writing to stderr, with the level taken
// from PRISM_LOG (debug/info/warn/error, default info).
func New(prefix string) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
	})
	switch strings.ToLower(os.Getenv("PRISM_LOG")) {
	case "debug":
		l.SetLevel(log.DebugLevel)
	case "warn", "warning":
		l.SetLevel(log.WarnLevel)
	case "error":
		l.SetLevel(log.ErrorLevel)
	default:
		l.SetLevel(log.InfoLevel)
	}
	return l
}
