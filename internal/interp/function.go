package interp

import (
	"fmt"

	"github.com/archlox/glox/internal/ast"
)

// Function is a user-defined Lox function: its declaring AST, the
// environment captured at declaration time (its closure), and whether it is
// a class initializer, which changes its return semantics.
type Function struct {
	name          string
	decl          *ast.FunctionExpr
	closure       *Environment
	isInitializer bool
}

// NewFunction wraps decl as a closure over closure, named name for error
// messages and stringification. Pass isInitializer true only for the
// unbound `init` method of a class.
func NewFunction(name string, decl *ast.FunctionExpr, closure *Environment, isInitializer bool) *Function {
	return &Function{name: name, decl: decl, closure: closure, isInitializer: isInitializer}
}

// Bind returns a copy of the function whose closure additionally defines
// `this` as instance, used both for plain method lookup and for resolving
// `super.method` calls.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return NewFunction(f.name, f.decl, env, f.isInitializer)
}

func (f *Function) Arity() int { return len(f.decl.Params) }

func (f *Function) Call(in *Interpreter, args []interface{}) (interface{}, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(f.decl.Body, env)
	if value, ok := asReturn(err); ok {
		if f.isInitializer {
			return f.closure.GetAt(0, "this"), nil
		}
		return value, nil
	}
	if err != nil {
		return nil, err
	}
	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

func (f *Function) String() string {
	if f.name == "" {
		return "<fn>"
	}
	return fmt.Sprintf("<fn %s>", f.name)
}
