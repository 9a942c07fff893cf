// parser.go — recursive-descent parser for cahlang.
//
// The parser walks the token stream with a single-token lookahead cursor
// and a remembered previous token, building the Expr/Stmt tree from ast.go.
//
// Expression precedence, lowest to highest:
//
//	assignment  =  +=  -=        (right-associative, bare variable targets)
//	logical     or  and          (short-circuit, one level)
//	equality    is  not
//	comparison  <  <=  >  >=
//	term        +  -
//	factor      *  /
//	unary       not  -
//	postfix     ++  --
//	primary     literals, identifiers, ( expr )
//
// Parsing is total: a failure inside one top-level declaration reports a
// diagnostic, resynchronizes just past the next statement boundary, and
// substitutes a no-op expression statement. Parse therefore returns a
// complete statement slice for any input and never panics.
package cahlang

// Parser consumes a token stream produced by Lexer.Scan.
type Parser struct {
	tokens []Token
	cur    int
	prev   Token
	rep    *Reporter
}

// NewParser creates a parser over tokens. Diagnostics go to rep.
func NewParser(tokens []Token, rep *Reporter) *Parser {
	return &Parser{tokens: tokens, rep: rep}
}

func (p *Parser) peek() Token {
	if p.cur >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF sentinel
	}
	return p.tokens[p.cur]
}

func (p *Parser) peekNext() Token {
	if p.cur+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.cur+1]
}

func (p *Parser) atEnd() bool { return p.peek().Type == EOF }

func (p *Parser) previous() Token { return p.prev }

func (p *Parser) advance() Token {
	t := p.peek()
	if !p.atEnd() {
		p.cur++
	}
	p.prev = t
	return t
}

func (p *Parser) check(tt TokenType) bool {
	if p.atEnd() {
		return tt == EOF
	}
	return p.peek().Type == tt
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

// errorAt reports the diagnostic and returns a ParseError for the caller
// to unwind to the statement level.
func (p *Parser) errorAt(tok Token, msg string) error {
	p.rep.ReportToken(tok, msg)
	return &ParseError{Token: tok, Msg: msg}
}

// consumeIf returns the next token if it matches tt; otherwise it raises a
// parse error attributing the current token's line.
func (p *Parser) consumeIf(tt TokenType, msg string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return Token{}, p.errorAt(p.peek(), msg)
}

// synchronize discards tokens until just past the next statement boundary.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Type == STMT_END {
			return
		}
		p.advance()
	}
}

// ----- expressions -----

func (p *Parser) expression() (Expr, error) {
	return p.assignment()
}

func (p *Parser) assignment() (Expr, error) {
	expr, err := p.logical()
	if err != nil {
		return nil, err
	}

	if p.match(ASSIGN) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if target, ok := expr.(*VariableExpr); ok {
			return &AssignExpr{Name: target.Name, Value: value}, nil
		}
		// Non-fatal: report and hand back the untouched expression.
		p.rep.ReportToken(equals, "Invalid assignment target.")
		return expr, nil
	}

	if p.match(PLUS_ASSIGN, MINUS_ASSIGN) {
		op := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		target, ok := expr.(*VariableExpr)
		if !ok {
			p.rep.ReportToken(op, "Invalid assignment target.")
			return expr, nil
		}
		// Desugar `x += e` into `x = x + e`.
		binOp := Token{Type: PLUS, Lexeme: "+", Line: op.Line}
		if op.Type == MINUS_ASSIGN {
			binOp = Token{Type: MINUS, Lexeme: "-", Line: op.Line}
		}
		return &AssignExpr{
			Name: target.Name,
			Value: &BinaryExpr{
				Left:     &VariableExpr{Name: target.Name},
				Operator: binOp,
				Right:    value,
			},
		}, nil
	}

	return expr, nil
}

func (p *Parser) logical() (Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(OR, AND) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (Expr, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.match(IS, NOT) {
		op := p.previous()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) comparison() (Expr, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.match(GREATER, GREATER_EQ, LESS, LESS_EQ) {
		op := p.previous()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) term() (Expr, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.match(MINUS, PLUS) {
		op := p.previous()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) factor() (Expr, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(DIV, MULT) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (Expr, error) {
	if p.match(NOT, MINUS) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Operator: op, Right: right}, nil
	}
	return p.postfix()
}

func (p *Parser) postfix() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(PLUS_PLUS, MINUS_MINUS) {
		expr = &PostfixExpr{Target: expr, Operator: p.previous()}
	}
	return expr, nil
}

func (p *Parser) primary() (Expr, error) {
	switch {
	case p.match(ID):
		return &VariableExpr{Name: p.previous()}, nil
	case p.match(FALSE):
		return &LiteralExpr{Value: Bool(false)}, nil
	case p.match(TRUE):
		return &LiteralExpr{Value: Bool(true)}, nil
	case p.match(NONE):
		return &LiteralExpr{Value: None}, nil
	case p.match(NUMBER, STRING):
		return &LiteralExpr{Value: p.previous().Literal}, nil
	case p.match(LROUND):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consumeIf(RROUND, "Expected ')' after expression."); err != nil {
			return nil, err
		}
		return &GroupingExpr{Expr: expr}, nil
	default:
		return nil, p.errorAt(p.peek(), "Expected an expression.")
	}
}

// ----- statements -----

func (p *Parser) printStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consumeIf(STMT_END, "Expected statement end after expression."); err != nil {
		return nil, err
	}
	return &PrintStmt{Expr: expr}, nil
}

func (p *Parser) expressionStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consumeIf(STMT_END, "Expected statement end after expression."); err != nil {
		return nil, err
	}
	return &ExpressionStmt{Expr: expr}, nil
}

// blockBody parses declarations up to the closing brace. The opening brace
// has already been consumed.
func (p *Parser) blockBody() (*BlockStmt, error) {
	var statements []Stmt
	for !p.check(RCURLY) && !p.atEnd() {
		if p.match(STMT_END) {
			continue
		}
		statements = append(statements, p.declaration())
	}
	if _, err := p.consumeIf(RCURLY, "Expected '}' after block."); err != nil {
		return nil, err
	}
	return &BlockStmt{Statements: statements}, nil
}

func (p *Parser) blockStatement() (Stmt, error) {
	block, err := p.blockBody()
	if err != nil {
		return nil, err
	}
	if _, err := p.consumeIf(STMT_END, "Expected statement end after block."); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) ifStatement() (Stmt, error) {
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consumeIf(LCURLY, "Expected '{' after if condition."); err != nil {
		return nil, err
	}
	thenBlock, err := p.blockBody()
	if err != nil {
		return nil, err
	}

	// Allow `else` on the line after the closing brace.
	if p.check(STMT_END) && p.peekNext().Type == ELSE {
		p.advance()
	}

	var elseBlock *BlockStmt
	if p.match(ELSE) {
		if _, err := p.consumeIf(LCURLY, "Expected '{' after else."); err != nil {
			return nil, err
		}
		elseBlock, err = p.blockBody()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consumeIf(STMT_END, "Expected statement end after if statement."); err != nil {
		return nil, err
	}
	return &IfStmt{Condition: cond, Then: thenBlock, Else: elseBlock}, nil
}

func (p *Parser) whileStatement() (Stmt, error) {
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consumeIf(LCURLY, "Expected '{' after while condition."); err != nil {
		return nil, err
	}
	body, err := p.blockBody()
	if err != nil {
		return nil, err
	}
	if _, err := p.consumeIf(STMT_END, "Expected statement end after while statement."); err != nil {
		return nil, err
	}
	return &WhileStmt{Condition: cond, Body: body}, nil
}

func (p *Parser) varDeclaration() (Stmt, error) {
	name, err := p.consumeIf(ID, "Expected variable name.")
	if err != nil {
		return nil, err
	}
	var initializer Expr
	if p.match(ASSIGN) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consumeIf(STMT_END, "Expected statement end after variable declaration."); err != nil {
		return nil, err
	}
	return &VarStmt{Name: name, Initializer: initializer}, nil
}

func (p *Parser) statement() (Stmt, error) {
	switch {
	case p.match(DOLLAR_LESS):
		return p.printStatement()
	case p.match(LCURLY):
		return p.blockStatement()
	case p.match(IF):
		return p.ifStatement()
	case p.match(WHILE):
		return p.whileStatement()
	default:
		return p.expressionStatement()
	}
}

// declaration parses one top-level declaration or statement. It always
// succeeds: a parse failure has already been reported, so it discards
// tokens to the next boundary and yields a harmless no-op.
func (p *Parser) declaration() Stmt {
	var s Stmt
	var err error
	if p.match(OFFERING) {
		s, err = p.varDeclaration()
	} else {
		s, err = p.statement()
	}
	if err != nil {
		p.synchronize()
		return &ExpressionStmt{Expr: &LiteralExpr{Value: None}}
	}
	return s
}

// Parse turns the token stream into a complete statement sequence. It
// never aborts early; malformed statements become no-ops.
func (p *Parser) Parse() []Stmt {
	var statements []Stmt
	for !p.atEnd() {
		if p.match(STMT_END) {
			continue
		}
		statements = append(statements, p.declaration())
	}
	return statements
}
