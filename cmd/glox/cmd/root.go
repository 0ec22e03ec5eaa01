// Package cmd holds the glox CLI's cobra command tree. Grounded on
// CWBudde-go-dws's cmd/dwscript/cmd package layout (root command carrying
// global flags and version metadata, one file per subcommand).
package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/archlox/glox/internal/config"
	"github.com/archlox/glox/internal/diag"
	"github.com/archlox/glox/internal/logging"
	"github.com/archlox/glox/internal/runner"
)

// Version information, set by build flags.
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose bool
	noColor bool

	// exitCode is set by whichever RunE handler actually ran, since cobra's
	// own Execute only reports success/failure as an error.
	exitCode = runner.ExitSuccess
)

var rootCmd = &cobra.Command{
	Use:   "glox [path]",
	Short: "glox is a tree-walking interpreter for Lox",
	Long: `glox is a tree-walking interpreter for Lox, a small dynamically-typed
scripting language with classes, closures, single inheritance and
first-class functions.

With no arguments it starts an interactive REPL. Given a single path it
executes that file, matching the jlox <path> usage contract.`,
	Version:      Version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			exitCode = newRunner().RunFile(args[0])
			return nil
		}
		runREPL()
		return nil
	},
}

// Execute runs the root command and returns the process exit code spec.md
// §6 prescribes (0/64/65/70).
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "glox: %v\n", err)
		return runner.ExitUsage
	}
	return exitCode
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "emit interpreter debug tracing")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI styling in diagnostics and debug log output")

	rootCmd.AddCommand(runCmd, versionCmd)
}

// newRunner builds a runner.Runner from the current flags and an optional
// .gloxrc.yaml, shared by the REPL and `glox run`.
func newRunner() *runner.Runner {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "glox: failed to load .gloxrc.yaml: %v\n", err)
		cfg = config.Default()
	}
	log := logging.NewSilent()
	if verbose {
		log = logging.New(os.Stderr, true, noColor)
	}
	reporter := diag.NewColorConsoleReporter(os.Stderr, !noColor && isatty.IsTerminal(os.Stderr.Fd()))
	return runner.New(os.Stdout, os.Stderr, reporter, log, cfg)
}

// stdinIsTTY decides whether the REPL shows a prompt: piped input (`echo
// '1+2' | glox`) suppresses it so scripted invocations get clean output.
func stdinIsTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd())
}
