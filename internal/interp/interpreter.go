// Package interp is the tree-walking evaluator: lexically-scoped
// environments, closures, classes with single inheritance, bound methods
// and dynamic dispatch, executed against the resolver's side-table.
//
// Grounded on archevan-glox's interpreter.go for the evaluation rules, with
// the visitor contract reshaped to return (interface{}, error) instead of
// mutating a shared result field, and return/break modeled as explicit
// error values (see signals.go) rather than host panics.
package interp

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/archlox/glox/internal/ast"
	"github.com/archlox/glox/internal/diag"
	"github.com/archlox/glox/internal/resolver"
	"github.com/archlox/glox/internal/token"
)

// DefaultMaxCallDepth bounds recursive Lox calls so a runaway program raises an
// ordinary runtime error instead of overflowing the host Go stack. See
// SPEC_FULL.md's recursion-depth guard; configurable via config.Config.
const DefaultMaxCallDepth = 2000

// Interpreter walks a resolved statement list, executing it against a chain
// of environments and writing Print output to Stdout.
type Interpreter struct {
	Stdout   io.Writer
	reporter diag.Reporter
	locals   resolver.Locals
	log      zerolog.Logger

	globals     *Environment
	environment *Environment

	maxCallDepth int
	callDepth    int
}

// New builds an Interpreter writing Print output to stdout and reporting
// runtime errors to reporter. locals is the resolver's side-table for the
// statements this Interpreter will execute. Debug tracing is silent until
// SetLogger is called.
func New(stdout io.Writer, reporter diag.Reporter, locals resolver.Locals) *Interpreter {
	globals := NewEnvironment(nil)
	return &Interpreter{
		Stdout:       stdout,
		reporter:     reporter,
		locals:       locals,
		log:          zerolog.Nop(),
		globals:      globals,
		environment:  globals,
		maxCallDepth: DefaultMaxCallDepth,
	}
}

// EnableNatives registers the native function library (currently clock())
// into the global environment. The runner calls this once at startup when
// config.Config.NativesEnabled is true; leaving it unregistered makes
// programs that call clock() fail with an ordinary undefined-variable
// runtime error rather than silently behaving differently.
func (in *Interpreter) EnableNatives() {
	in.globals.Define("clock", clockFn{})
}

// SetLocals installs the resolver's side-table for the statements about to
// be interpreted. The runner calls this once per file or REPL line, since
// the resolver's table accumulates across an entire session.
func (in *Interpreter) SetLocals(locals resolver.Locals) {
	in.locals = locals
}

// SetLogger attaches a zerolog.Logger that receives Debug-level events for
// scope entry/exit, function calls and class construction. Pass a
// Disabled-level logger (the default) to silence tracing entirely.
func (in *Interpreter) SetLogger(log zerolog.Logger) {
	in.log = log
}

// SetMaxCallDepth overrides the recursion guard (DefaultMaxCallDepth if
// unset), per .gloxrc.yaml's max_call_depth setting.
func (in *Interpreter) SetMaxCallDepth(depth int) {
	if depth > 0 {
		in.maxCallDepth = depth
	}
}

// Interpret executes stmts top to bottom, reporting (and stopping on) the
// first runtime error. A nil return means the program ran to completion.
func (in *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			if rerr, ok := err.(*diag.RuntimeError); ok {
				in.reporter.Runtime(rerr)
				return rerr
			}
			return err
		}
	}
	return nil
}

func (in *Interpreter) execute(s ast.Stmt) error {
	_, err := s.Accept(in)
	return err
}

func (in *Interpreter) evaluate(e ast.Expr) (interface{}, error) {
	return e.Accept(in)
}

// executeBlock temporarily substitutes in.environment, executes stmts, and
// restores the previous environment on every exit path: normal completion,
// a return/break signal, or a runtime error.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := in.environment
	in.environment = env
	in.log.Debug().Msg("enter scope")
	defer func() {
		in.environment = previous
		in.log.Debug().Msg("exit scope")
	}()

	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) lookupVariable(name token.Token, exprID uint64) (interface{}, error) {
	if depth, ok := in.locals[exprID]; ok {
		return in.environment.GetAt(depth, name.Lexeme), nil
	}
	if v, ok := in.globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, diag.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// --- statements ---

func (in *Interpreter) VisitExpressionStmt(s *ast.ExpressionStmt) (interface{}, error) {
	_, err := in.evaluate(s.Expression)
	return nil, err
}

func (in *Interpreter) VisitPrintStmt(s *ast.PrintStmt) (interface{}, error) {
	value, err := in.evaluate(s.Expression)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(in.Stdout, stringify(value))
	return nil, nil
}

func (in *Interpreter) VisitVarStmt(s *ast.VarStmt) (interface{}, error) {
	var value interface{}
	if s.Initializer != nil {
		v, err := in.evaluate(s.Initializer)
		if err != nil {
			return nil, err
		}
		value = v
	}
	in.environment.Define(s.Name.Lexeme, value)
	return nil, nil
}

func (in *Interpreter) VisitBlockStmt(s *ast.BlockStmt) (interface{}, error) {
	return nil, in.executeBlock(s.Statements, NewEnvironment(in.environment))
}

func (in *Interpreter) VisitIfStmt(s *ast.IfStmt) (interface{}, error) {
	cond, err := in.evaluate(s.Condition)
	if err != nil {
		return nil, err
	}
	if isTruthy(cond) {
		return nil, in.execute(s.Then)
	}
	if s.Else != nil {
		return nil, in.execute(s.Else)
	}
	return nil, nil
}

func (in *Interpreter) VisitWhileStmt(s *ast.WhileStmt) (interface{}, error) {
	for {
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return nil, err
		}
		if !isTruthy(cond) {
			return nil, nil
		}
		if err := in.execute(s.Body); err != nil {
			if isBreak(err) {
				return nil, nil
			}
			return nil, err
		}
	}
}

func (in *Interpreter) VisitBreakStmt(s *ast.BreakStmt) (interface{}, error) {
	return nil, &breakSignal{}
}

func (in *Interpreter) VisitReturnStmt(s *ast.ReturnStmt) (interface{}, error) {
	var value interface{}
	if s.Value != nil {
		v, err := in.evaluate(s.Value)
		if err != nil {
			return nil, err
		}
		value = v
	}
	return nil, &returnSignal{value: value}
}

func (in *Interpreter) VisitFunctionStmt(s *ast.FunctionStmt) (interface{}, error) {
	fn := NewFunction(s.Name.Lexeme, s.Function, in.environment, false)
	in.environment.Define(s.Name.Lexeme, fn)
	return nil, nil
}

func (in *Interpreter) VisitClassStmt(s *ast.ClassStmt) (interface{}, error) {
	var superclass *Class
	if s.Superclass != nil {
		v, err := in.evaluate(s.Superclass)
		if err != nil {
			return nil, err
		}
		sc, ok := v.(*Class)
		if !ok {
			return nil, diag.NewRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	env := in.environment
	if superclass != nil {
		env = NewEnvironment(env)
		env.Define("super", superclass)
	}

	methods := make(map[string]*Function)
	staticMethods := make(map[string]*Function)
	for _, method := range s.Methods {
		isInit := !method.IsStatic && method.Name.Lexeme == "init"
		fn := NewFunction(method.Name.Lexeme, method.Function, env, isInit)
		if method.IsStatic {
			staticMethods[method.Name.Lexeme] = fn
		} else {
			methods[method.Name.Lexeme] = fn
		}
	}

	class := NewClass(s.Name.Lexeme, superclass, methods, staticMethods)
	in.environment.Define(s.Name.Lexeme, class)
	in.log.Debug().Str("class", class.Name).Int("methods", len(methods)).Msg("class declared")
	return nil, nil
}

// --- expressions ---

func (in *Interpreter) VisitLiteralExpr(e *ast.LiteralExpr) (interface{}, error) {
	return e.Value, nil
}

func (in *Interpreter) VisitGroupingExpr(e *ast.GroupingExpr) (interface{}, error) {
	return in.evaluate(e.Expression)
}

func (in *Interpreter) VisitVariableExpr(e *ast.VariableExpr) (interface{}, error) {
	return in.lookupVariable(e.Name, e.ID())
}

func (in *Interpreter) VisitAssignExpr(e *ast.AssignExpr) (interface{}, error) {
	value, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if depth, ok := in.locals[e.ID()]; ok {
		in.environment.AssignAt(depth, e.Name.Lexeme, value)
		return value, nil
	}
	if !in.globals.Assign(e.Name.Lexeme, value) {
		return nil, diag.NewRuntimeError(e.Name, "Undefined variable '%s'.", e.Name.Lexeme)
	}
	return value, nil
}

func (in *Interpreter) VisitUnaryExpr(e *ast.UnaryExpr) (interface{}, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op.Type {
	case token.Minus:
		n, ok := right.(float64)
		if !ok {
			return nil, diag.NewRuntimeError(e.Op, "Operand must be a number.")
		}
		return -n, nil
	case token.Bang:
		return !isTruthy(right), nil
	}
	return nil, diag.NewRuntimeError(e.Op, "Unknown unary operator.")
}

func (in *Interpreter) VisitBinaryExpr(e *ast.BinaryExpr) (interface{}, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.Plus:
		if ls, ok := left.(string); ok {
			return ls + stringifyOperand(right), nil
		}
		if rs, ok := right.(string); ok {
			return stringifyOperand(left) + rs, nil
		}
		ln, lok := left.(float64)
		rn, rok := right.(float64)
		if lok && rok {
			return ln + rn, nil
		}
		return nil, diag.NewRuntimeError(e.Op, "Operands must be two numbers or two strings.")
	case token.Minus:
		return numberBinary(e.Op, left, right, func(a, b float64) (interface{}, error) { return a - b, nil })
	case token.Star:
		return numberBinary(e.Op, left, right, func(a, b float64) (interface{}, error) { return a * b, nil })
	case token.Slash:
		return numberBinary(e.Op, left, right, func(a, b float64) (interface{}, error) {
			if b == 0 {
				return nil, diag.NewRuntimeError(e.Op, "Division by zero.")
			}
			return a / b, nil
		})
	case token.Greater:
		return numberBinary(e.Op, left, right, func(a, b float64) (interface{}, error) { return a > b, nil })
	case token.GreaterEqual:
		return numberBinary(e.Op, left, right, func(a, b float64) (interface{}, error) { return a >= b, nil })
	case token.Less:
		return numberBinary(e.Op, left, right, func(a, b float64) (interface{}, error) { return a < b, nil })
	case token.LessEqual:
		return numberBinary(e.Op, left, right, func(a, b float64) (interface{}, error) { return a <= b, nil })
	case token.EqualEqual:
		return isEqual(left, right), nil
	case token.BangEqual:
		return !isEqual(left, right), nil
	}
	return nil, diag.NewRuntimeError(e.Op, "Unknown binary operator.")
}

// stringifyOperand renders the non-string side of a `+` whose other
// operand is a string, per spec.md's concatenation rule.
func stringifyOperand(v interface{}) string { return stringify(v) }

func numberBinary(op token.Token, left, right interface{}, f func(a, b float64) (interface{}, error)) (interface{}, error) {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		return nil, diag.NewRuntimeError(op, "Operands must be numbers.")
	}
	return f(ln, rn)
}

func (in *Interpreter) VisitLogicalExpr(e *ast.LogicalExpr) (interface{}, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op.Type == token.Or {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) VisitTernaryExpr(e *ast.TernaryExpr) (interface{}, error) {
	cond, err := in.evaluate(e.Cond)
	if err != nil {
		return nil, err
	}
	if isTruthy(cond) {
		return in.evaluate(e.IfTrue)
	}
	return in.evaluate(e.IfFalse)
}

func (in *Interpreter) VisitCallExpr(e *ast.CallExpr) (interface{}, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]interface{}, len(e.Arguments))
	for i, a := range e.Arguments {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, diag.NewRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, diag.NewRuntimeError(e.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}

	if in.callDepth >= in.maxCallDepth {
		return nil, diag.NewRuntimeError(e.Paren, "Stack overflow.")
	}
	in.callDepth++
	defer func() { in.callDepth-- }()

	in.log.Debug().Str("callee", callable.String()).Int("depth", in.callDepth).Msg("call")
	return callable.Call(in, args)
}

func (in *Interpreter) VisitGetExpr(e *ast.GetExpr) (interface{}, error) {
	object, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	switch obj := object.(type) {
	case *Instance:
		return obj.Get(e.Name)
	case *Class:
		return obj.Get(e.Name)
	default:
		return nil, diag.NewRuntimeError(e.Name, "Only instances have properties.")
	}
}

func (in *Interpreter) VisitSetExpr(e *ast.SetExpr) (interface{}, error) {
	object, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, diag.NewRuntimeError(e.Name, "Only instances have fields.")
	}
	value, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(e.Name, value)
	return value, nil
}

func (in *Interpreter) VisitThisExpr(e *ast.ThisExpr) (interface{}, error) {
	return in.lookupVariable(e.Keyword, e.ID())
}

func (in *Interpreter) VisitSuperExpr(e *ast.SuperExpr) (interface{}, error) {
	depth, ok := in.locals[e.ID()]
	if !ok {
		return nil, diag.NewRuntimeError(e.Keyword, "Undefined variable 'super'.")
	}
	superclass, _ := in.environment.GetAt(depth, "super").(*Class)
	instance, _ := in.environment.GetAt(depth-1, "this").(*Instance)

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, diag.NewRuntimeError(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.Bind(instance), nil
}

func (in *Interpreter) VisitFunctionExpr(e *ast.FunctionExpr) (interface{}, error) {
	return NewFunction("", e, in.environment, false), nil
}
