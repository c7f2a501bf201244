// Package logging builds the charmbracelet/log loggers used across nmsearch.
// Diagnostic output always goes to stderr so stdout stays clean for --print.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a logger on stderr. verbose enables debug output.
func New(verbose bool) *log.Logger {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter returns a logger writing to w.
func NewWithWriter(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "nmsearch",
		Level:  level,
	})
}

// Nop returns a logger that discards everything.
func Nop() *log.Logger {
	return log.New(io.Discard)
}
