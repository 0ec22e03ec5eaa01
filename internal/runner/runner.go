// Package runner wires scanner, parser, resolver and interpreter into the
// two execution modes spec.md §6 names: run a file, or drive a REPL line
// by line. cmd/glox reaches the pipeline phases only through this package.
package runner

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/archlox/glox/internal/config"
	"github.com/archlox/glox/internal/diag"
	"github.com/archlox/glox/internal/interp"
	"github.com/archlox/glox/internal/parser"
	"github.com/archlox/glox/internal/resolver"
	"github.com/archlox/glox/internal/scanner"
)

// Exit codes, per spec.md §6.
const (
	ExitSuccess     = 0
	ExitUsage       = 64
	ExitStaticError = 65
	ExitRuntime     = 70
)

// Runner owns the long-lived pieces of the pipeline: the reporter (whose
// hadRuntimeError flag persists across REPL lines), the resolver's
// accumulated side-table, and the interpreter's global environment.
type Runner struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Reporter diag.Reporter
	Logger   zerolog.Logger
	Cfg      config.Config

	resolver *resolver.Resolver
	interp   *interp.Interpreter
}

// New builds a Runner. cfg supplies the recursion-depth guard and gates
// whether the native function library (clock()) is registered at all.
func New(stdout, stderr io.Writer, reporter diag.Reporter, logger zerolog.Logger, cfg config.Config) *Runner {
	res := resolver.New(reporter)
	in := interp.New(stdout, reporter, res.Resolve(nil))
	in.SetLogger(logger)
	in.SetMaxCallDepth(cfg.MaxCallDepth)
	if cfg.NativesEnabled {
		in.EnableNatives()
	}
	return &Runner{
		Stdout:   stdout,
		Stderr:   stderr,
		Reporter: reporter,
		Logger:   logger,
		Cfg:      cfg,
		resolver: res,
		interp:   in,
	}
}

// SetLogger replaces the logger used for both the Runner's own bookkeeping
// and the interpreter's debug tracing, e.g. to attach a REPL session id
// after construction.
func (r *Runner) SetLogger(logger zerolog.Logger) {
	r.Logger = logger
	r.interp.SetLogger(logger)
}

// RunFile scans, parses, resolves and interprets the contents of path,
// returning the process exit code spec.md §6 prescribes.
func (r *Runner) RunFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(r.Stderr, "glox: %v\n", err)
		return ExitUsage
	}
	return r.run(string(data), false)
}

// RunREPL drives an interactive (or piped) session, reading lines from in
// and writing the configured prompt to Stdout only when isTTY is true.
func (r *Runner) RunREPL(in io.Reader, isTTY bool) {
	scan := bufio.NewScanner(in)
	scan.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for {
		if isTTY {
			fmt.Fprint(r.Stdout, r.Cfg.Prompt)
		}
		if !scan.Scan() {
			if isTTY {
				fmt.Fprintln(r.Stdout)
			}
			return
		}
		line := scan.Text()
		if line == "" {
			continue
		}
		r.run(line, true)
		r.Reporter.Reset()
	}
}

// run executes source through the full pipeline and reports the exit code
// a file-mode invocation would use; REPL callers ignore the return value
// and instead rely on Reporter.Reset between lines.
func (r *Runner) run(source string, isREPL bool) int {
	sc := scanner.New(source, r.Reporter)
	tokens := sc.ScanTokens()
	if r.Reporter.HadError() {
		return ExitStaticError
	}

	p := parser.New(tokens, r.Reporter, isREPL)
	stmts := p.Parse()
	if r.Reporter.HadError() {
		return ExitStaticError
	}

	locals := r.resolver.Resolve(stmts)
	if r.Reporter.HadError() {
		return ExitStaticError
	}

	r.interp.SetLocals(locals)
	if err := r.interp.Interpret(stmts); err != nil {
		return ExitRuntime
	}
	return ExitSuccess
}
