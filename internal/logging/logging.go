// Package logging builds the structured loggers shared by the arcade commands,
// the terminal host and the SSH server.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = log.InfoLevel

var level = DefaultLevel

// SetLevel sets the level for loggers created afterwards.
// An empty string keeps the current level.
func SetLevel(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return err
	}
	level = lvl
	return nil
}

// Level returns the level new loggers start at.
func Level() log.Level {
	return level
}

// New returns a timestamped logger writing to stderr with the given prefix.
func New(prefix string) *log.Logger {
	return NewWriter(os.Stderr, prefix)
}

// NewWriter is New with an explicit destination.
func NewWriter(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// Discard returns a logger that drops everything. Hosts that draw to the
// terminal use it so log lines do not tear the frame.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
