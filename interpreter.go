// interpreter.go — tree-walking evaluator.
//
// The interpreter owns one global frame for its whole life and tracks the
// current frame while executing. Each block pushes exactly one child frame
// and restores the previous frame on the way out, error or not. Top-level
// statements are error-isolated: a runtime failure is reported and the
// next statement still runs, which is what keeps the REPL alive.
package cahlang

import (
	"fmt"
	"io"
)

// Interpreter executes parsed statements against a persistent global
// environment, writing print output to out and runtime diagnostics to rep.
type Interpreter struct {
	globals *Env
	env     *Env // current frame
	out     io.Writer
	rep     *Reporter
}

// NewInterpreter creates an interpreter with a fresh global frame.
func NewInterpreter(out io.Writer, rep *Reporter) *Interpreter {
	globals := NewEnv(nil)
	return &Interpreter{globals: globals, env: globals, out: out, rep: rep}
}

// Interpret runs each top-level statement in order. A runtime error aborts
// only the statement that raised it.
func (i *Interpreter) Interpret(statements []Stmt) {
	for _, s := range statements {
		if err := i.execute(s); err != nil {
			if rt, ok := err.(*RuntimeError); ok {
				i.rep.ReportToken(rt.Token, rt.Msg)
			} else {
				i.rep.Report(0, err.Error())
			}
		}
	}
}

func (i *Interpreter) execute(s Stmt) error {
	switch s := s.(type) {
	case *ExpressionStmt:
		_, err := i.evaluate(s.Expr)
		return err

	case *PrintStmt:
		v, err := i.evaluate(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.out, v.String())
		return nil

	case *VarStmt:
		v := None
		if s.Initializer != nil {
			var err error
			v, err = i.evaluate(s.Initializer)
			if err != nil {
				return err
			}
		}
		i.env.Define(s.Name.Lexeme, v)
		return nil

	case *BlockStmt:
		return i.executeBlock(s.Statements, NewEnv(i.env))

	case *IfStmt:
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if cond.Truthy() {
			return i.executeBlock(s.Then.Statements, NewEnv(i.env))
		}
		if s.Else != nil {
			return i.executeBlock(s.Else.Statements, NewEnv(i.env))
		}
		return nil

	case *WhileStmt:
		for {
			cond, err := i.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !cond.Truthy() {
				return nil
			}
			if err := i.executeBlock(s.Body.Statements, NewEnv(i.env)); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("unknown statement %T", s)
	}
}

// executeBlock runs statements in env and restores the previous frame
// unconditionally, so block-local bindings never leak past the block.
func (i *Interpreter) executeBlock(statements []Stmt, env *Env) error {
	prev := i.env
	i.env = env
	defer func() { i.env = prev }()

	for _, s := range statements {
		if err := i.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluate(e Expr) (Value, error) {
	switch e := e.(type) {
	case *LiteralExpr:
		return e.Value, nil

	case *GroupingExpr:
		return i.evaluate(e.Expr)

	case *VariableExpr:
		return i.env.Get(e.Name)

	case *AssignExpr:
		v, err := i.evaluate(e.Value)
		if err != nil {
			return None, err
		}
		if err := i.env.Assign(e.Name, v); err != nil {
			return None, err
		}
		return v, nil

	case *UnaryExpr:
		return i.evalUnary(e)

	case *BinaryExpr:
		return i.evalBinary(e)

	case *LogicalExpr:
		return i.evalLogical(e)

	case *PostfixExpr:
		return i.evalPostfix(e)

	default:
		return None, fmt.Errorf("unknown expression %T", e)
	}
}

func (i *Interpreter) evalUnary(e *UnaryExpr) (Value, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return None, err
	}
	switch e.Operator.Type {
	case MINUS:
		if right.Tag != VTNum {
			return None, &RuntimeError{Token: e.Operator, Msg: "Unary '-' can only be used on numbers."}
		}
		return Num(-right.Data.(float64)), nil
	case NOT:
		return Bool(!right.Truthy()), nil
	default:
		return None, &RuntimeError{Token: e.Operator, Msg: "Unknown unary operator."}
	}
}

// numOperands unwraps both operands as numbers or fails naming the
// operator.
func numOperands(op Token, left, right Value) (float64, float64, error) {
	if left.Tag != VTNum || right.Tag != VTNum {
		return 0, 0, &RuntimeError{Token: op, Msg: "Operands of '" + op.Lexeme + "' must be numbers."}
	}
	return left.Data.(float64), right.Data.(float64), nil
}

func (i *Interpreter) evalBinary(e *BinaryExpr) (Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return None, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return None, err
	}

	switch e.Operator.Type {
	case PLUS:
		// A string on the left concatenates the canonical rendering of
		// anything on the right; numbers only add to numbers.
		switch left.Tag {
		case VTStr:
			return Str(left.Data.(string) + right.String()), nil
		case VTNum:
			if right.Tag != VTNum {
				return None, &RuntimeError{Token: e.Operator, Msg: "Cannot add non-number to number."}
			}
			return Num(left.Data.(float64) + right.Data.(float64)), nil
		default:
			return None, &RuntimeError{Token: e.Operator, Msg: "Operands of '+' must be numbers or begin with a string."}
		}

	case MINUS:
		l, r, err := numOperands(e.Operator, left, right)
		if err != nil {
			return None, err
		}
		return Num(l - r), nil
	case MULT:
		l, r, err := numOperands(e.Operator, left, right)
		if err != nil {
			return None, err
		}
		return Num(l * r), nil
	case DIV:
		l, r, err := numOperands(e.Operator, left, right)
		if err != nil {
			return None, err
		}
		return Num(l / r), nil

	case GREATER:
		l, r, err := numOperands(e.Operator, left, right)
		if err != nil {
			return None, err
		}
		return Bool(l > r), nil
	case GREATER_EQ:
		l, r, err := numOperands(e.Operator, left, right)
		if err != nil {
			return None, err
		}
		return Bool(l >= r), nil
	case LESS:
		l, r, err := numOperands(e.Operator, left, right)
		if err != nil {
			return None, err
		}
		return Bool(l < r), nil
	case LESS_EQ:
		l, r, err := numOperands(e.Operator, left, right)
		if err != nil {
			return None, err
		}
		return Bool(l <= r), nil

	case IS:
		return Bool(Equal(left, right)), nil
	case NOT:
		return Bool(!Equal(left, right)), nil

	default:
		return None, &RuntimeError{Token: e.Operator, Msg: "Unknown operator in binary expression."}
	}
}

// evalLogical short-circuits and returns the deciding operand's own value,
// not a coerced boolean.
func (i *Interpreter) evalLogical(e *LogicalExpr) (Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return None, err
	}
	if e.Operator.Type == OR {
		if left.Truthy() {
			return left, nil
		}
	} else {
		if !left.Truthy() {
			return left, nil
		}
	}
	return i.evaluate(e.Right)
}

// evalPostfix updates a numeric variable in place and yields the new
// value.
func (i *Interpreter) evalPostfix(e *PostfixExpr) (Value, error) {
	target, ok := e.Target.(*VariableExpr)
	if !ok {
		return None, &RuntimeError{Token: e.Operator, Msg: "Operand of '" + e.Operator.Lexeme + "' must be a variable."}
	}
	old, err := i.env.Get(target.Name)
	if err != nil {
		return None, err
	}
	if old.Tag != VTNum {
		return None, &RuntimeError{Token: e.Operator, Msg: "Operand of '" + e.Operator.Lexeme + "' must be a number."}
	}

	n := old.Data.(float64)
	if e.Operator.Type == PLUS_PLUS {
		n++
	} else {
		n--
	}
	v := Num(n)
	if err := i.env.Assign(target.Name, v); err != nil {
		return None, err
	}
	return v, nil
}
