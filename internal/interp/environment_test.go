package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("x", 1.0)

	v, ok := env.Get("x")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)

	_, ok = env.Get("missing")
	assert.False(t, ok)
}

func TestEnvironmentEnclosingChainFallsThrough(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", "outer value")
	inner := NewEnvironment(outer)

	v, ok := inner.Get("x")
	assert.True(t, ok)
	assert.Equal(t, "outer value", v)
}

func TestEnvironmentAssignWalksToDefiningScope(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", 1.0)
	inner := NewEnvironment(outer)

	assert.True(t, inner.Assign("x", 2.0))
	v, _ := outer.Get("x")
	assert.Equal(t, 2.0, v)
}

func TestEnvironmentAssignUndefinedFails(t *testing.T) {
	env := NewEnvironment(nil)
	assert.False(t, env.Assign("never-defined", 1.0))
}

func TestEnvironmentGetAtAndAssignAt(t *testing.T) {
	global := NewEnvironment(nil)
	block := NewEnvironment(global)
	inner := NewEnvironment(block)

	global.Define("x", "global")
	block.Define("x", "block")

	assert.Equal(t, "block", inner.GetAt(1, "x"))
	assert.Equal(t, "global", inner.GetAt(2, "x"))

	inner.AssignAt(1, "x", "updated")
	v, _ := block.Get("x")
	assert.Equal(t, "updated", v)
}

func TestStringifyRules(t *testing.T) {
	assert.Equal(t, "nil", stringify(nil))
	assert.Equal(t, "true", stringify(true))
	assert.Equal(t, "false", stringify(false))
	assert.Equal(t, "4", stringify(4.0))
	assert.Equal(t, "4.5", stringify(4.5))
	assert.Equal(t, "hello", stringify("hello"))
}

func TestTruthinessRules(t *testing.T) {
	assert.False(t, isTruthy(nil))
	assert.False(t, isTruthy(false))
	assert.True(t, isTruthy(true))
	assert.True(t, isTruthy(0.0))
	assert.True(t, isTruthy(""))
}

func TestEqualityIsTypeAware(t *testing.T) {
	assert.True(t, isEqual(nil, nil))
	assert.False(t, isEqual(nil, false))
	assert.True(t, isEqual(1.0, 1.0))
	assert.False(t, isEqual(1.0, "1"))
}
