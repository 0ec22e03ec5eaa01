// Package resolver implements the static pass that computes, for every
// variable reference, how many enclosing scopes to skip to reach its
// binding, and diagnoses scope/loop/class/return misuse ahead of time.
package resolver

import (
	"github.com/archlox/glox/internal/ast"
	"github.com/archlox/glox/internal/diag"
	"github.com/archlox/glox/internal/token"
)

// functionType tracks what kind of function body the resolver is currently
// inside, to validate `return` usage.
type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnMethod
	fnInitializer
)

// classType tracks whether (and how) the resolver is currently inside a
// class body, to validate `this`/`super` usage.
type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// binding is the bookkeeping kept per declared name in a scope.
type binding struct {
	defined bool
	used    bool
	decl    token.Token
}

type scope map[string]*binding

// Locals is the side-table produced by Resolve: for every resolved
// expression node, the number of enclosing-scope hops to its binding.
// Expressions absent from the map are globals, looked up dynamically.
type Locals map[uint64]int

// Resolver is a one-pass ast.Stmt/ast.Expr visitor. Construct with New and
// call Resolve once per top-level statement list.
type Resolver struct {
	reporter diag.Reporter
	locals   Locals

	scopes []scope

	currentFunction functionType
	currentClass    classType
	inLoop          bool
}

// New builds a Resolver that reports static diagnostics to reporter.
func New(reporter diag.Reporter) *Resolver {
	return &Resolver{reporter: reporter, locals: make(Locals)}
}

// Resolve walks stmts and returns the accumulated side-table. It may be
// called multiple times (e.g. once per REPL line) on the same Resolver; the
// side-table accumulates across calls, matching how the interpreter's
// locals map is long-lived across a REPL session.
func (r *Resolver) Resolve(stmts []ast.Stmt) Locals {
	r.resolveStmts(stmts)
	return r.locals
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	_, _ = s.Accept(r)
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	_, _ = e.Accept(r)
}

// --- scope stack ---

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(scope))
}

func (r *Resolver) endScope() {
	top := r.scopes[len(r.scopes)-1]
	for _, b := range top {
		if !b.used {
			r.reporter.ErrorAtToken(b.decl, "Unused local variable.")
		}
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	sc := r.scopes[len(r.scopes)-1]
	if _, ok := sc[name.Lexeme]; ok {
		r.reporter.ErrorAtToken(name, "Already a variable with this name in this scope.")
	}
	sc[name.Lexeme] = &binding{defined: false, decl: name}
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	sc := r.scopes[len(r.scopes)-1]
	if b, ok := sc[name.Lexeme]; ok {
		b.defined = true
	} else {
		sc[name.Lexeme] = &binding{defined: true, decl: name}
	}
}

// declarePreseeded installs a binding that is already defined and marked
// used, for the synthetic `this`/`super` scopes a method body is nested in.
func (r *Resolver) declarePreseeded(name string) {
	sc := r.scopes[len(r.scopes)-1]
	sc[name] = &binding{defined: true, used: true}
}

func (r *Resolver) resolveLocal(exprID uint64, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if b, ok := r.scopes[i][name.Lexeme]; ok {
			b.used = true
			r.locals[exprID] = len(r.scopes) - 1 - i
			return
		}
	}
	// not found in any scope: it's a global, resolved dynamically at runtime.
}

func (r *Resolver) resolveFunction(fn *ast.FunctionExpr, typ functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = typ
	defer func() { r.currentFunction = enclosingFunction }()

	r.beginScope()
	defer r.endScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
}

// --- ast.StmtVisitor ---

func (r *Resolver) VisitBlockStmt(s *ast.BlockStmt) (interface{}, error) {
	r.beginScope()
	r.resolveStmts(s.Statements)
	r.endScope()
	return nil, nil
}

func (r *Resolver) VisitVarStmt(s *ast.VarStmt) (interface{}, error) {
	r.declare(s.Name)
	if s.Initializer != nil {
		r.resolveExpr(s.Initializer)
	}
	r.define(s.Name)
	return nil, nil
}

func (r *Resolver) VisitFunctionStmt(s *ast.FunctionStmt) (interface{}, error) {
	r.declare(s.Name)
	r.define(s.Name)
	r.resolveFunction(s.Function, fnFunction)
	return nil, nil
}

func (r *Resolver) VisitClassStmt(s *ast.ClassStmt) (interface{}, error) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.reporter.ErrorAtToken(s.Superclass.Name, "A class can't inherit from itself.")
		} else {
			r.resolveExpr(s.Superclass)
		}
		r.currentClass = classSubclass
		r.beginScope()
		r.declarePreseeded("super")
		defer r.endScope()
	}

	r.beginScope()
	r.declarePreseeded("this")
	defer r.endScope()

	for _, method := range s.Methods {
		typ := fnMethod
		if !method.IsStatic && method.Name.Lexeme == "init" {
			typ = fnInitializer
		}
		r.resolveFunction(method.Function, typ)
	}
	return nil, nil
}

func (r *Resolver) VisitExpressionStmt(s *ast.ExpressionStmt) (interface{}, error) {
	r.resolveExpr(s.Expression)
	return nil, nil
}

func (r *Resolver) VisitIfStmt(s *ast.IfStmt) (interface{}, error) {
	r.resolveExpr(s.Condition)
	r.resolveStmt(s.Then)
	if s.Else != nil {
		r.resolveStmt(s.Else)
	}
	return nil, nil
}

func (r *Resolver) VisitPrintStmt(s *ast.PrintStmt) (interface{}, error) {
	r.resolveExpr(s.Expression)
	return nil, nil
}

func (r *Resolver) VisitReturnStmt(s *ast.ReturnStmt) (interface{}, error) {
	if r.currentFunction == fnNone {
		r.reporter.ErrorAtToken(s.Keyword, "Can't return from top-level code.")
	}
	if s.Value != nil {
		if r.currentFunction == fnInitializer {
			r.reporter.ErrorAtToken(s.Keyword, "Can't return a value from an initializer.")
		}
		r.resolveExpr(s.Value)
	}
	return nil, nil
}

func (r *Resolver) VisitBreakStmt(s *ast.BreakStmt) (interface{}, error) {
	if !r.inLoop {
		r.reporter.ErrorAtToken(s.Keyword, "Can't use 'break' outside of a loop.")
	}
	return nil, nil
}

func (r *Resolver) VisitWhileStmt(s *ast.WhileStmt) (interface{}, error) {
	r.resolveExpr(s.Condition)
	enclosingLoop := r.inLoop
	r.inLoop = true
	r.resolveStmt(s.Body)
	r.inLoop = enclosingLoop
	return nil, nil
}

// --- ast.ExprVisitor ---

func (r *Resolver) VisitVariableExpr(e *ast.VariableExpr) (interface{}, error) {
	if len(r.scopes) > 0 {
		if b, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !b.defined {
			r.reporter.ErrorAtToken(e.Name, "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(e.ID(), e.Name)
	return nil, nil
}

func (r *Resolver) VisitAssignExpr(e *ast.AssignExpr) (interface{}, error) {
	r.resolveExpr(e.Value)
	r.resolveLocal(e.ID(), e.Name)
	return nil, nil
}

func (r *Resolver) VisitBinaryExpr(e *ast.BinaryExpr) (interface{}, error) {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitLogicalExpr(e *ast.LogicalExpr) (interface{}, error) {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitTernaryExpr(e *ast.TernaryExpr) (interface{}, error) {
	r.resolveExpr(e.Cond)
	r.resolveExpr(e.IfTrue)
	r.resolveExpr(e.IfFalse)
	return nil, nil
}

func (r *Resolver) VisitCallExpr(e *ast.CallExpr) (interface{}, error) {
	r.resolveExpr(e.Callee)
	for _, arg := range e.Arguments {
		r.resolveExpr(arg)
	}
	return nil, nil
}

func (r *Resolver) VisitGetExpr(e *ast.GetExpr) (interface{}, error) {
	r.resolveExpr(e.Object)
	return nil, nil
}

func (r *Resolver) VisitSetExpr(e *ast.SetExpr) (interface{}, error) {
	r.resolveExpr(e.Value)
	r.resolveExpr(e.Object)
	return nil, nil
}

func (r *Resolver) VisitThisExpr(e *ast.ThisExpr) (interface{}, error) {
	if r.currentClass == classNone {
		r.reporter.ErrorAtToken(e.Keyword, "Can't use 'this' outside of a class.")
		return nil, nil
	}
	r.resolveLocal(e.ID(), e.Keyword)
	return nil, nil
}

func (r *Resolver) VisitSuperExpr(e *ast.SuperExpr) (interface{}, error) {
	switch r.currentClass {
	case classNone:
		r.reporter.ErrorAtToken(e.Keyword, "Can't use 'super' outside of a class.")
	case classClass:
		r.reporter.ErrorAtToken(e.Keyword, "Can't use 'super' in a class with no superclass.")
	default:
		r.resolveLocal(e.ID(), e.Keyword)
	}
	return nil, nil
}

func (r *Resolver) VisitGroupingExpr(e *ast.GroupingExpr) (interface{}, error) {
	r.resolveExpr(e.Expression)
	return nil, nil
}

func (r *Resolver) VisitLiteralExpr(e *ast.LiteralExpr) (interface{}, error) {
	return nil, nil
}

func (r *Resolver) VisitUnaryExpr(e *ast.UnaryExpr) (interface{}, error) {
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitFunctionExpr(e *ast.FunctionExpr) (interface{}, error) {
	r.resolveFunction(e, fnFunction)
	return nil, nil
}
