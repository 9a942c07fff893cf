// printer.go — debug pretty-printer for parsed trees.
//
// Renders expressions in a parenthesized prefix form, e.g.
// `1 + (2 * x)` becomes `(+ 1 (group (* 2 x)))`. Used by tests and by the
// CLI's `ast` subcommand; the interpreter never consults it.
package cahlang

import "strings"

// FormatExpr renders one expression tree.
func FormatExpr(e Expr) string {
	switch e := e.(type) {
	case *LiteralExpr:
		if e.Value.Tag == VTStr {
			return "\"" + e.Value.Data.(string) + "\""
		}
		return e.Value.String()
	case *GroupingExpr:
		return parenthesize("group", e.Expr)
	case *UnaryExpr:
		return parenthesize(e.Operator.Lexeme, e.Right)
	case *BinaryExpr:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *LogicalExpr:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *VariableExpr:
		return e.Name.Lexeme
	case *AssignExpr:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	case *PostfixExpr:
		return parenthesize("post"+e.Operator.Lexeme, e.Target)
	default:
		return "<unknown expr>"
	}
}

// FormatStmt renders one statement, blocks indented flat.
func FormatStmt(s Stmt) string {
	switch s := s.(type) {
	case *ExpressionStmt:
		return FormatExpr(s.Expr)
	case *PrintStmt:
		return parenthesize("print", s.Expr)
	case *VarStmt:
		if s.Initializer == nil {
			return "(offering " + s.Name.Lexeme + ")"
		}
		return parenthesize("offering "+s.Name.Lexeme, s.Initializer)
	case *BlockStmt:
		parts := make([]string, 0, len(s.Statements)+1)
		parts = append(parts, "(block")
		for _, inner := range s.Statements {
			parts = append(parts, FormatStmt(inner))
		}
		return strings.Join(parts, " ") + ")"
	case *IfStmt:
		out := "(if " + FormatExpr(s.Condition) + " " + FormatStmt(s.Then)
		if s.Else != nil {
			out += " " + FormatStmt(s.Else)
		}
		return out + ")"
	case *WhileStmt:
		return "(while " + FormatExpr(s.Condition) + " " + FormatStmt(s.Body) + ")"
	default:
		return "<unknown stmt>"
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		b.WriteString(FormatExpr(e))
	}
	b.WriteByte(')')
	return b.String()
}
