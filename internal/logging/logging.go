// ABOUTME: Structured diagnostic logger for hoplit.
// ABOUTME: Wraps charmbracelet/log with a level parsed from config or flags.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// New returns a logger writing to w at the named level.
// An empty level means DefaultLevel.
func New(w io.Writer, level string) (*log.Logger, error) {
	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	return log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "hoplit",
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
