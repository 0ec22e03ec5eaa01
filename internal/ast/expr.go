package ast

import "github.com/archlox/glox/internal/token"

// Expr is implemented by every expression AST node. ID returns the node's
// unique identity, used to key the resolver's side-table.
type Expr interface {
	Accept(v ExprVisitor) (interface{}, error)
	ID() uint64
}

// ExprVisitor is implemented by anything that walks the expression tree:
// the resolver and the interpreter.
type ExprVisitor interface {
	VisitAssignExpr(e *AssignExpr) (interface{}, error)
	VisitBinaryExpr(e *BinaryExpr) (interface{}, error)
	VisitCallExpr(e *CallExpr) (interface{}, error)
	VisitFunctionExpr(e *FunctionExpr) (interface{}, error)
	VisitGetExpr(e *GetExpr) (interface{}, error)
	VisitGroupingExpr(e *GroupingExpr) (interface{}, error)
	VisitLiteralExpr(e *LiteralExpr) (interface{}, error)
	VisitLogicalExpr(e *LogicalExpr) (interface{}, error)
	VisitSetExpr(e *SetExpr) (interface{}, error)
	VisitSuperExpr(e *SuperExpr) (interface{}, error)
	VisitTernaryExpr(e *TernaryExpr) (interface{}, error)
	VisitThisExpr(e *ThisExpr) (interface{}, error)
	VisitUnaryExpr(e *UnaryExpr) (interface{}, error)
	VisitVariableExpr(e *VariableExpr) (interface{}, error)
}

type exprBase struct{ id uint64 }

func (e exprBase) ID() uint64 { return e.id }

func newExprBase() exprBase { return exprBase{id: NewID()} }

// LiteralExpr is a boolean, nil, number or string constant.
type LiteralExpr struct {
	exprBase
	Value interface{}
}

func NewLiteralExpr(value interface{}) *LiteralExpr {
	return &LiteralExpr{exprBase: newExprBase(), Value: value}
}
func (e *LiteralExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitLiteralExpr(e) }

// VariableExpr references a named binding.
type VariableExpr struct {
	exprBase
	Name token.Token
}

func NewVariableExpr(name token.Token) *VariableExpr {
	return &VariableExpr{exprBase: newExprBase(), Name: name}
}
func (e *VariableExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitVariableExpr(e) }

// AssignExpr assigns Value to an existing binding named Name.
type AssignExpr struct {
	exprBase
	Name  token.Token
	Value Expr
}

func NewAssignExpr(name token.Token, value Expr) *AssignExpr {
	return &AssignExpr{exprBase: newExprBase(), Name: name, Value: value}
}
func (e *AssignExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitAssignExpr(e) }

// GroupingExpr is a parenthesized sub-expression.
type GroupingExpr struct {
	exprBase
	Expression Expr
}

func NewGroupingExpr(expression Expr) *GroupingExpr {
	return &GroupingExpr{exprBase: newExprBase(), Expression: expression}
}
func (e *GroupingExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitGroupingExpr(e) }

// UnaryExpr applies Op (! or -) to Right.
type UnaryExpr struct {
	exprBase
	Op    token.Token
	Right Expr
}

func NewUnaryExpr(op token.Token, right Expr) *UnaryExpr {
	return &UnaryExpr{exprBase: newExprBase(), Op: op, Right: right}
}
func (e *UnaryExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitUnaryExpr(e) }

// BinaryExpr is a left-associative arithmetic, comparison or equality op.
type BinaryExpr struct {
	exprBase
	Left  Expr
	Op    token.Token
	Right Expr
}

func NewBinaryExpr(left Expr, op token.Token, right Expr) *BinaryExpr {
	return &BinaryExpr{exprBase: newExprBase(), Left: left, Op: op, Right: right}
}
func (e *BinaryExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitBinaryExpr(e) }

// LogicalExpr is `and`/`or` with short-circuit evaluation.
type LogicalExpr struct {
	exprBase
	Left  Expr
	Op    token.Token
	Right Expr
}

func NewLogicalExpr(left Expr, op token.Token, right Expr) *LogicalExpr {
	return &LogicalExpr{exprBase: newExprBase(), Left: left, Op: op, Right: right}
}
func (e *LogicalExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitLogicalExpr(e) }

// TernaryExpr is the `cond ? ifTrue : ifFalse` operator.
type TernaryExpr struct {
	exprBase
	Cond    Expr
	IfTrue  Expr
	IfFalse Expr
}

func NewTernaryExpr(cond, ifTrue, ifFalse Expr) *TernaryExpr {
	return &TernaryExpr{exprBase: newExprBase(), Cond: cond, IfTrue: ifTrue, IfFalse: ifFalse}
}
func (e *TernaryExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitTernaryExpr(e) }

// CallExpr invokes Callee with Arguments. Paren is the closing ')' token,
// used to locate arity/callability runtime errors.
type CallExpr struct {
	exprBase
	Callee    Expr
	Paren     token.Token
	Arguments []Expr
}

func NewCallExpr(callee Expr, paren token.Token, arguments []Expr) *CallExpr {
	return &CallExpr{exprBase: newExprBase(), Callee: callee, Paren: paren, Arguments: arguments}
}
func (e *CallExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitCallExpr(e) }

// GetExpr reads a property Name off Object.
type GetExpr struct {
	exprBase
	Object Expr
	Name   token.Token
}

func NewGetExpr(object Expr, name token.Token) *GetExpr {
	return &GetExpr{exprBase: newExprBase(), Object: object, Name: name}
}
func (e *GetExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitGetExpr(e) }

// SetExpr writes Value to property Name on Object.
type SetExpr struct {
	exprBase
	Object Expr
	Name   token.Token
	Value  Expr
}

func NewSetExpr(object Expr, name token.Token, value Expr) *SetExpr {
	return &SetExpr{exprBase: newExprBase(), Object: object, Name: name, Value: value}
}
func (e *SetExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitSetExpr(e) }

// ThisExpr references the implicit receiver inside a method body.
type ThisExpr struct {
	exprBase
	Keyword token.Token
}

func NewThisExpr(keyword token.Token) *ThisExpr {
	return &ThisExpr{exprBase: newExprBase(), Keyword: keyword}
}
func (e *ThisExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitThisExpr(e) }

// SuperExpr reads Method off the superclass of the enclosing class.
type SuperExpr struct {
	exprBase
	Keyword token.Token
	Method  token.Token
}

func NewSuperExpr(keyword, method token.Token) *SuperExpr {
	return &SuperExpr{exprBase: newExprBase(), Keyword: keyword, Method: method}
}
func (e *SuperExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitSuperExpr(e) }

// FunctionExpr is an anonymous function literal: `fun(params) { body }`.
type FunctionExpr struct {
	exprBase
	Params []token.Token
	Body   []Stmt
}

func NewFunctionExpr(params []token.Token, body []Stmt) *FunctionExpr {
	return &FunctionExpr{exprBase: newExprBase(), Params: params, Body: body}
}
func (e *FunctionExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitFunctionExpr(e) }
