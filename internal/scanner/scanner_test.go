package scanner

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/archlox/glox/internal/diag"
	"github.com/archlox/glox/internal/token"
)

func scanTypes(t *testing.T, source string) []token.Type {
	t.Helper()
	reporter := diag.NewConsoleReporter(io.Discard)
	toks := New(source, reporter).ScanTokens()
	assert.False(t, reporter.HadError())
	types := make([]token.Type, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	return types
}

func TestScanEmpty(t *testing.T) {
	assert.Equal(t, []token.Type{token.EOF}, scanTypes(t, ""))
}

func TestScanArithmetic(t *testing.T) {
	reporter := diag.NewConsoleReporter(io.Discard)
	toks := New("2 + 4", reporter).ScanTokens()
	assert.False(t, reporter.HadError())
	assert.Equal(t, []token.Type{token.Number, token.Plus, token.Number, token.EOF},
		[]token.Type{toks[0].Type, toks[1].Type, toks[2].Type, toks[3].Type})
	assert.Equal(t, 2.0, toks[0].Literal)
	assert.Equal(t, 4.0, toks[2].Literal)
}

func TestScanString(t *testing.T) {
	reporter := diag.NewConsoleReporter(io.Discard)
	toks := New(`"hello world"`, reporter).ScanTokens()
	assert.False(t, reporter.HadError())
	assert.Equal(t, token.String, toks[0].Type)
	assert.Equal(t, "hello world", toks[0].Literal)
}

func TestScanUnterminatedString(t *testing.T) {
	reporter := diag.NewConsoleReporter(io.Discard)
	New(`"hello`, reporter).ScanTokens()
	assert.True(t, reporter.HadError())
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	types := scanTypes(t, "var x = clock and y or z")
	assert.Equal(t, []token.Type{
		token.Var, token.Identifier, token.Equal, token.Identifier,
		token.And, token.Identifier, token.Or, token.Identifier, token.EOF,
	}, types)
}

func TestScanTernaryAndLineComment(t *testing.T) {
	types := scanTypes(t, "a ? b : c // trailing comment\n")
	assert.Equal(t, []token.Type{
		token.Identifier, token.Question, token.Identifier, token.Colon,
		token.Identifier, token.EOF,
	}, types)
}

func TestScanBlockComment(t *testing.T) {
	types := scanTypes(t, "1 /* nested /* comment */ still-comment */ + 2")
	assert.Equal(t, []token.Type{token.Number, token.Plus, token.Number, token.EOF}, types)
}

func TestScanLineNumbersAcrossNewlines(t *testing.T) {
	reporter := diag.NewConsoleReporter(io.Discard)
	toks := New("1\n2\n3", reporter).ScanTokens()
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 3, toks[2].Line)
}
