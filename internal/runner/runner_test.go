package runner

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlox/glox/internal/config"
	"github.com/archlox/glox/internal/diag"
)

func newTestRunner(stdout, stderr *bytes.Buffer) *Runner {
	reporter := diag.NewConsoleReporter(stderr)
	return New(stdout, stderr, reporter, zerolog.Nop(), config.Default())
}

func TestRunFileSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.lox")
	require.NoError(t, os.WriteFile(path, []byte(`print "hello";`), 0o644))

	var stdout, stderr bytes.Buffer
	r := newTestRunner(&stdout, &stderr)
	code := r.RunFile(path)

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "hello\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunFileStaticError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.lox")
	require.NoError(t, os.WriteFile(path, []byte(`print ;`), 0o644))

	var stdout, stderr bytes.Buffer
	r := newTestRunner(&stdout, &stderr)
	code := r.RunFile(path)

	assert.Equal(t, ExitStaticError, code)
	assert.NotEmpty(t, stderr.String())
}

func TestRunFileRuntimeError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runtime.lox")
	require.NoError(t, os.WriteFile(path, []byte(`print 1 / 0;`), 0o644))

	var stdout, stderr bytes.Buffer
	r := newTestRunner(&stdout, &stderr)
	code := r.RunFile(path)

	assert.Equal(t, ExitRuntime, code)
	assert.Contains(t, stderr.String(), "Division by zero")
}

func TestRunFileMissingPathIsUsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := newTestRunner(&stdout, &stderr)
	code := r.RunFile(filepath.Join(t.TempDir(), "missing.lox"))

	assert.Equal(t, ExitUsage, code)
}

func TestRunREPLResetsStaticErrorButPersistsRuntimeError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := newTestRunner(&stdout, &stderr)

	input := strings.NewReader("print ;\nprint 1 / 0;\nprint 1 + 1;\n")
	r.RunREPL(input, false)

	assert.Contains(t, stdout.String(), "2\n")
	assert.False(t, r.Reporter.HadError(), "hadError must reset between REPL lines")
	assert.True(t, r.Reporter.HadRuntimeError(), "hadRuntimeError must persist across REPL lines")
}
