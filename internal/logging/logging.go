// Package logging wires up the zerolog logger shared by the CLI and the
// interpreter's debug tracing. Grounded on the zerolog CLI-tool setup
// recurring across the example pack (dburkart-fossil, linhlam-kc-agent,
// terramate-io-terramate).
package logging

import (
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger writing to w. verbose raises the level to
// Debug; otherwise only Info and above are emitted. noColor disables the
// console writer's ANSI styling.
func New(w io.Writer, verbose, noColor bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: noColor}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// NewSilent builds a logger that discards everything, used when the driver
// has no interest in interpreter tracing (non-verbose file runs).
func NewSilent() zerolog.Logger {
	return zerolog.New(io.Discard).Level(zerolog.Disabled)
}

// SessionID returns a fresh REPL session identifier for log correlation.
// It has no effect on language semantics.
func SessionID() string {
	return uuid.NewString()
}
