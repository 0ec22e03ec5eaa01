package resolver

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlox/glox/internal/ast"
	"github.com/archlox/glox/internal/diag"
	"github.com/archlox/glox/internal/parser"
	"github.com/archlox/glox/internal/scanner"
)

// parse scans and parses source without failing on static errors, so
// resolver tests can assert on reporter state themselves.
func parse(t *testing.T, source string) ([]ast.Stmt, diag.Reporter) {
	t.Helper()
	reporter := diag.NewConsoleReporter(io.Discard)
	toks := scanner.New(source, reporter).ScanTokens()
	stmts := parser.New(toks, reporter, false).Parse()
	return stmts, reporter
}

func TestResolveLocalDepth(t *testing.T) {
	stmts, reporter := parse(t, `
{
  var a = 1;
  {
    var b = 2;
    print a + b;
  }
}
`)
	require.False(t, reporter.HadError())

	locals := New(reporter).Resolve(stmts)
	assert.NotEmpty(t, locals)

	// In `print a + b;`, `a` is one scope out and `b` is in the innermost scope.
	inner := stmts[0].(*ast.BlockStmt).Statements[1].(*ast.BlockStmt)
	sum := inner.Statements[1].(*ast.PrintStmt).Expression.(*ast.BinaryExpr)
	depthA, ok := locals[sum.Left.ID()]
	require.True(t, ok)
	assert.Equal(t, 1, depthA)
	depthB, ok := locals[sum.Right.ID()]
	require.True(t, ok)
	assert.Equal(t, 0, depthB)
}

func TestSelfReferentialInitializerIsError(t *testing.T) {
	stmts, reporter := parse(t, `
var a = "outer";
{
  var a = a;
}
`)
	require.False(t, reporter.HadError())
	New(reporter).Resolve(stmts)
	assert.True(t, reporter.HadError())
}

func TestDuplicateDeclarationInScopeIsError(t *testing.T) {
	stmts, reporter := parse(t, `
{
  var a = 1;
  var a = 2;
}
`)
	require.False(t, reporter.HadError())
	New(reporter).Resolve(stmts)
	assert.True(t, reporter.HadError())
}

func TestUnusedLocalIsError(t *testing.T) {
	stmts, reporter := parse(t, `
{
  var unused = 1;
}
`)
	require.False(t, reporter.HadError())
	New(reporter).Resolve(stmts)
	assert.True(t, reporter.HadError())
}

func TestReturnOutsideFunctionIsError(t *testing.T) {
	stmts, reporter := parse(t, `return 1;`)
	require.False(t, reporter.HadError())
	New(reporter).Resolve(stmts)
	assert.True(t, reporter.HadError())
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	stmts, reporter := parse(t, `break;`)
	require.False(t, reporter.HadError())
	New(reporter).Resolve(stmts)
	assert.True(t, reporter.HadError())
}

func TestThisOutsideClassIsError(t *testing.T) {
	stmts, reporter := parse(t, `print this;`)
	require.False(t, reporter.HadError())
	New(reporter).Resolve(stmts)
	assert.True(t, reporter.HadError())
}

func TestSuperWithoutSuperclassIsError(t *testing.T) {
	stmts, reporter := parse(t, `
class Foo {
  bar() {
    return super.bar();
  }
}
`)
	require.False(t, reporter.HadError())
	New(reporter).Resolve(stmts)
	assert.True(t, reporter.HadError())
}

func TestClassInheritingFromItselfIsError(t *testing.T) {
	stmts, reporter := parse(t, `class Foo < Foo {}`)
	require.False(t, reporter.HadError())
	New(reporter).Resolve(stmts)
	assert.True(t, reporter.HadError())
}

func TestValidProgramReportsNoErrors(t *testing.T) {
	stmts, reporter := parse(t, `
class Greeter {
  init(name) {
    this.name = name;
  }
  greet() {
    print "hi " + this.name;
  }
}
var g = Greeter("world");
g.greet();
`)
	require.False(t, reporter.HadError())
	New(reporter).Resolve(stmts)
	assert.False(t, reporter.HadError())
}
