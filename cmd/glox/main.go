// Command glox is a tree-walking interpreter for Lox. See cmd/glox/cmd for
// the command tree; main.go is the only place that calls os.Exit.
package main

import (
	"os"

	"github.com/archlox/glox/cmd/glox/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
