package interp

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlox/glox/internal/diag"
	"github.com/archlox/glox/internal/parser"
	"github.com/archlox/glox/internal/resolver"
	"github.com/archlox/glox/internal/scanner"
)

// run scans, parses, resolves and interprets source, returning stdout and
// any runtime error. It fails the test on a static error, since these
// tests are meant to exercise interpretation, not the earlier phases.
func run(t *testing.T, source string) (string, error) {
	t.Helper()
	reporter := diag.NewConsoleReporter(io.Discard)

	toks := scanner.New(source, reporter).ScanTokens()
	require.False(t, reporter.HadError(), "unexpected scan error")

	stmts := parser.New(toks, reporter, false).Parse()
	require.False(t, reporter.HadError(), "unexpected parse error")

	locals := resolver.New(reporter).Resolve(stmts)
	require.False(t, reporter.HadError(), "unexpected resolve error")

	var out bytes.Buffer
	in := New(&out, reporter, locals)
	in.EnableNatives()
	err := in.Interpret(stmts)
	return out.String(), err
}

func TestArithmeticAndPrint(t *testing.T) {
	out, err := run(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestStringConcatenationStringifiesNumbers(t *testing.T) {
	out, err := run(t, `print "count: " + 4;`)
	require.NoError(t, err)
	assert.Equal(t, "count: 4\n", out)
}

func TestIntegralNumberStringifiesWithoutTrailingZero(t *testing.T) {
	out, err := run(t, `print 8 / 2;`)
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := run(t, `print 1 / 0;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Division by zero")
}

func TestTruthiness(t *testing.T) {
	out, err := run(t, `
if (0) print "zero is truthy"; else print "zero is falsey";
if ("") print "empty string is truthy"; else print "empty string is falsey";
if (nil) print "nil is truthy"; else print "nil is falsey";
`)
	require.NoError(t, err)
	assert.Equal(t, "zero is truthy\nempty string is truthy\nnil is falsey\n", out)
}

func TestTernary(t *testing.T) {
	out, err := run(t, `print 1 < 2 ? "yes" : "no";`)
	require.NoError(t, err)
	assert.Equal(t, "yes\n", out)
}

func TestClosureCapturesEnvironment(t *testing.T) {
	out, err := run(t, `
fun makeCounter() {
  var count = 0;
  fun increment() {
    count = count + 1;
    return count;
  }
  return increment;
}
var counter = makeCounter();
print counter();
print counter();
print counter();
`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestWhileAndBreak(t *testing.T) {
	out, err := run(t, `
var i = 0;
while (true) {
  if (i >= 3) break;
  print i;
  i = i + 1;
}
`)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestForLoopDesugaring(t *testing.T) {
	out, err := run(t, `
for (var i = 0; i < 3; i = i + 1) {
  print i;
}
`)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestClassesSingleInheritanceAndSuper(t *testing.T) {
	out, err := run(t, `
class Animal {
  init(name) {
    this.name = name;
  }
  speak() {
    return this.name + " makes a sound.";
  }
}
class Dog < Animal {
  speak() {
    return super.speak() + " Woof!";
  }
}
var d = Dog("Rex");
print d.speak();
`)
	require.NoError(t, err)
	assert.Equal(t, "Rex makes a sound. Woof!\n", out)
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, `print nope;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable")
}

func TestCallArityMismatchIsRuntimeError(t *testing.T) {
	_, err := run(t, `
fun add(a, b) { return a + b; }
add(1);
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected 2 arguments but got 1")
}

func TestCallOnNonCallableIsRuntimeError(t *testing.T) {
	_, err := run(t, `
var x = 1;
x();
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can only call functions and classes")
}

func TestGetOnNonInstanceIsRuntimeError(t *testing.T) {
	_, err := run(t, `
var x = 1;
print x.field;
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Only instances have properties")
}

func TestNativeClock(t *testing.T) {
	out, err := run(t, `print clock() >= 0;`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestRecursionGuardTripsStackOverflow(t *testing.T) {
	reporter := diag.NewConsoleReporter(io.Discard)
	toks := scanner.New(`
fun recurse() { return recurse(); }
recurse();
`, reporter).ScanTokens()
	stmts := parser.New(toks, reporter, false).Parse()
	locals := resolver.New(reporter).Resolve(stmts)

	var out bytes.Buffer
	in := New(&out, reporter, locals)
	in.SetMaxCallDepth(50)
	err := in.Interpret(stmts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Stack overflow")
}
