package cmd

import (
	"fmt"
	"os"

	"github.com/archlox/glox/internal/logging"
)

// runREPL drives the interactive session, grounded on the book-standard
// read-eval-print loop every teacher/example Lox port implements, adapted
// to suppress the prompt for piped (non-TTY) input.
func runREPL() {
	r := newRunner()
	isTTY := stdinIsTTY()
	if isTTY {
		sessionID := logging.SessionID()
		r.SetLogger(r.Logger.With().Str("session", sessionID).Logger())
		fmt.Fprintf(os.Stdout, "glox %s - a Lox interpreter. Ctrl-D to exit.\n", Version)
	}
	r.RunREPL(os.Stdin, isTTY)
}
