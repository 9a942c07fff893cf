// ast.go — the parsed program representation.
//
// Expressions and statements are closed tagged unions: a marker interface
// with a fixed set of concrete node structs. Nodes are built once by the
// parser and never mutated afterwards; the interpreter walks them with
// type switches.
package cahlang

// Expr is the closed set of expression nodes.
type Expr interface {
	exprNode()
}

// LiteralExpr holds an already-materialized runtime value.
type LiteralExpr struct {
	Value Value
}

// GroupingExpr is a parenthesized sub-expression.
type GroupingExpr struct {
	Expr Expr
}

// UnaryExpr is prefix `not` or `-`.
type UnaryExpr struct {
	Operator Token
	Right    Expr
}

// BinaryExpr covers arithmetic, comparison and equality operators.
type BinaryExpr struct {
	Left     Expr
	Operator Token
	Right    Expr
}

// LogicalExpr is `and`/`or`; evaluation short-circuits.
type LogicalExpr struct {
	Left     Expr
	Operator Token
	Right    Expr
}

// VariableExpr reads a named binding.
type VariableExpr struct {
	Name Token
}

// AssignExpr writes an existing binding and yields the assigned value.
type AssignExpr struct {
	Name  Token
	Value Expr
}

// PostfixExpr is `++`/`--`. The target must be a bare variable; the
// expression evaluates to the updated value.
type PostfixExpr struct {
	Target   Expr
	Operator Token
}

func (*LiteralExpr) exprNode()  {}
func (*GroupingExpr) exprNode() {}
func (*UnaryExpr) exprNode()    {}
func (*BinaryExpr) exprNode()   {}
func (*LogicalExpr) exprNode()  {}
func (*VariableExpr) exprNode() {}
func (*AssignExpr) exprNode()   {}
func (*PostfixExpr) exprNode()  {}

// Stmt is the closed set of statement nodes.
type Stmt interface {
	stmtNode()
}

// ExpressionStmt evaluates an expression for its side effects.
type ExpressionStmt struct {
	Expr Expr
}

// PrintStmt is `$<` expr.
type PrintStmt struct {
	Expr Expr
}

// VarStmt is `offering name [= initializer]`. Initializer may be nil,
// in which case the binding starts as none.
type VarStmt struct {
	Name        Token
	Initializer Expr
}

// BlockStmt is `{ ... }`; execution runs in a fresh child frame.
type BlockStmt struct {
	Statements []Stmt
}

// IfStmt has brace-block bodies only; Else may be nil.
type IfStmt struct {
	Condition Expr
	Then      *BlockStmt
	Else      *BlockStmt
}

// WhileStmt has a brace-block body only.
type WhileStmt struct {
	Condition Expr
	Body      *BlockStmt
}

func (*ExpressionStmt) stmtNode() {}
func (*PrintStmt) stmtNode()      {}
func (*VarStmt) stmtNode()        {}
func (*BlockStmt) stmtNode()      {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
