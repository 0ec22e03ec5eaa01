package ast

import "github.com/archlox/glox/internal/token"

// Stmt is implemented by every statement AST node.
type Stmt interface {
	Accept(v StmtVisitor) (interface{}, error)
}

// StmtVisitor is implemented by anything that walks the statement tree: the
// resolver and the interpreter.
type StmtVisitor interface {
	VisitBlockStmt(s *BlockStmt) (interface{}, error)
	VisitBreakStmt(s *BreakStmt) (interface{}, error)
	VisitClassStmt(s *ClassStmt) (interface{}, error)
	VisitExpressionStmt(s *ExpressionStmt) (interface{}, error)
	VisitFunctionStmt(s *FunctionStmt) (interface{}, error)
	VisitIfStmt(s *IfStmt) (interface{}, error)
	VisitPrintStmt(s *PrintStmt) (interface{}, error)
	VisitReturnStmt(s *ReturnStmt) (interface{}, error)
	VisitVarStmt(s *VarStmt) (interface{}, error)
	VisitWhileStmt(s *WhileStmt) (interface{}, error)
}

// ExpressionStmt evaluates Expression and discards the result (except in
// REPL mode, see parser.Parse).
type ExpressionStmt struct{ Expression Expr }

func NewExpressionStmt(expression Expr) *ExpressionStmt { return &ExpressionStmt{Expression: expression} }
func (s *ExpressionStmt) Accept(v StmtVisitor) (interface{}, error) {
	return v.VisitExpressionStmt(s)
}

// PrintStmt evaluates Expression, stringifies it and writes it with a
// trailing newline.
type PrintStmt struct{ Expression Expr }

func NewPrintStmt(expression Expr) *PrintStmt { return &PrintStmt{Expression: expression} }
func (s *PrintStmt) Accept(v StmtVisitor) (interface{}, error) { return v.VisitPrintStmt(s) }

// VarStmt declares Name, optionally initialized by Initializer.
type VarStmt struct {
	Name        token.Token
	Initializer Expr
}

func NewVarStmt(name token.Token, initializer Expr) *VarStmt {
	return &VarStmt{Name: name, Initializer: initializer}
}
func (s *VarStmt) Accept(v StmtVisitor) (interface{}, error) { return v.VisitVarStmt(s) }

// BlockStmt is a lexically-scoped list of statements.
type BlockStmt struct{ Statements []Stmt }

func NewBlockStmt(statements []Stmt) *BlockStmt { return &BlockStmt{Statements: statements} }
func (s *BlockStmt) Accept(v StmtVisitor) (interface{}, error) { return v.VisitBlockStmt(s) }

// IfStmt executes Then if Condition is truthy, else Else (which may be nil).
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

func NewIfStmt(condition Expr, then, els Stmt) *IfStmt {
	return &IfStmt{Condition: condition, Then: then, Else: els}
}
func (s *IfStmt) Accept(v StmtVisitor) (interface{}, error) { return v.VisitIfStmt(s) }

// WhileStmt loops Body while Condition is truthy.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func NewWhileStmt(condition Expr, body Stmt) *WhileStmt {
	return &WhileStmt{Condition: condition, Body: body}
}
func (s *WhileStmt) Accept(v StmtVisitor) (interface{}, error) { return v.VisitWhileStmt(s) }

// BreakStmt exits the innermost enclosing loop.
type BreakStmt struct{ Keyword token.Token }

func NewBreakStmt(keyword token.Token) *BreakStmt { return &BreakStmt{Keyword: keyword} }
func (s *BreakStmt) Accept(v StmtVisitor) (interface{}, error) { return v.VisitBreakStmt(s) }

// ReturnStmt returns Value (nil if absent) from the enclosing function.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr
}

func NewReturnStmt(keyword token.Token, value Expr) *ReturnStmt {
	return &ReturnStmt{Keyword: keyword, Value: value}
}
func (s *ReturnStmt) Accept(v StmtVisitor) (interface{}, error) { return v.VisitReturnStmt(s) }

// FunctionStmt is a named function declaration.
type FunctionStmt struct {
	Name     token.Token
	Function *FunctionExpr
}

func NewFunctionStmt(name token.Token, function *FunctionExpr) *FunctionStmt {
	return &FunctionStmt{Name: name, Function: function}
}
func (s *FunctionStmt) Accept(v StmtVisitor) (interface{}, error) { return v.VisitFunctionStmt(s) }

// Method is a function declared inside a class body. IsStatic selects a
// class (static) method over an instance method.
type Method struct {
	Name     token.Token
	Function *FunctionExpr
	IsStatic bool
}

// ClassStmt declares a class, optionally inheriting from Superclass.
type ClassStmt struct {
	Name       token.Token
	Superclass *VariableExpr
	Methods    []*Method
}

func NewClassStmt(name token.Token, superclass *VariableExpr, methods []*Method) *ClassStmt {
	return &ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}
func (s *ClassStmt) Accept(v StmtVisitor) (interface{}, error) { return v.VisitClassStmt(s) }
