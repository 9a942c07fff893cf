// lexer.go — scanner for cahlang source text.
//
// The lexer makes a single left-to-right pass over the source and produces
// a flat token stream. Statement boundaries are not punctuation in cahlang;
// they are inferred from newlines: a newline closes a statement only when
// the most recently emitted token could plausibly end one (a literal, an
// identifier, a closing bracket, or `end`) and the scanner is not inside
// `(...)`/`[...]`. A line ending in a binary operator therefore continues
// onto the next line, and bracketed expressions may span lines freely.
//
// Scanning is total: malformed string and number literals are reported to
// the Reporter, the offending token is dropped, and the scan carries on
// from the next character. The stream always terminates with exactly one
// StatementEnd followed by exactly one EOF.
package cahlang

import "strconv"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	STMT_END

	// Punctuation
	LROUND  // "("
	RROUND  // ")"
	LSQUARE // "["
	RSQUARE // "]"
	LCURLY  // "{"
	RCURLY  // "}"
	DOT
	COMMA

	// Operators
	ASSIGN // "="
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ
	PLUS
	MINUS
	MULT
	DIV
	PLUS_PLUS    // "++"
	MINUS_MINUS  // "--"
	PLUS_ASSIGN  // "+="
	MINUS_ASSIGN // "-="
	DOLLAR_LESS  // "$<" print marker
	DOLLAR_MORE  // "$>" scan marker (lexed, no grammar rule yet)

	// Literals & identifiers
	ID
	STRING
	NUMBER

	// Keywords
	OFFERING
	RITUAL
	END
	RETURN
	NOT
	AND
	OR
	IS
	CLASS
	THIS
	SUPER
	WHILE
	FOR
	IF
	ELSE
	TRUE
	FALSE
	NONE
)

// Token is a lexical token with an optional literal value.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal Value // None unless Type is STRING or NUMBER
	Line    int   // 1-based
}

var keywords = map[string]TokenType{
	"offering": OFFERING,
	"ritual":   RITUAL,
	"end":      END,
	"return":   RETURN,
	"not":      NOT,
	"and":      AND,
	"or":       OR,
	"is":       IS,
	"class":    CLASS,
	"this":     THIS,
	"super":    SUPER,
	"while":    WHILE,
	"for":      FOR,
	"if":       IF,
	"else":     ELSE,
	"true":     TRUE,
	"false":    FALSE,
	"none":     NONE,
}

// Lexer scans a cahlang source string into tokens.
type Lexer struct {
	src           string
	start         int // start index of current token
	cur           int // current index
	line          int // 1-based
	ignoreNewline bool
	tokens        []Token
	rep           *Reporter
}

// NewLexer creates a lexer for the given source. Diagnostics go to rep.
func NewLexer(src string, rep *Reporter) *Lexer {
	return &Lexer{src: src, line: 1, rep: rep}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.src[l.cur]
}

func (l *Lexer) peekNext() byte {
	if l.cur+1 >= len(l.src) {
		return 0
	}
	return l.src[l.cur+1]
}

func (l *Lexer) advance() byte {
	ch := l.src[l.cur]
	l.cur++
	return ch
}

// matchNext consumes the next character only if it equals ch.
func (l *Lexer) matchNext(ch byte) bool {
	if l.isAtEnd() || l.src[l.cur] != ch {
		return false
	}
	l.cur++
	return true
}

func (l *Lexer) addToken(tt TokenType) {
	l.tokens = append(l.tokens, Token{
		Type:   tt,
		Lexeme: l.src[l.start:l.cur],
		Line:   l.line,
	})
}

func (l *Lexer) addLiteralToken(tt TokenType, lit Value) {
	l.tokens = append(l.tokens, Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.line,
	})
}

func (l *Lexer) previousToken() *Token {
	if len(l.tokens) == 0 {
		return nil
	}
	return &l.tokens[len(l.tokens)-1]
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

// canEndStatement is the token-kind lookback used by the newline heuristic.
func canEndStatement(tt TokenType) bool {
	switch tt {
	case RCURLY, RROUND, RSQUARE,
		TRUE, FALSE, NUMBER, STRING, NONE,
		END, ID:
		return true
	default:
		return false
	}
}

func (l *Lexer) handleNewline() {
	l.line++
	if l.ignoreNewline {
		return
	}
	prev := l.previousToken()
	if prev == nil || !canEndStatement(prev.Type) {
		return
	}
	l.tokens = append(l.tokens, Token{
		Type:   STMT_END,
		Lexeme: "StatementEnd",
		Line:   l.line - 1,
	})
}

// handleString scans a `"`-delimited literal. There is no escape
// processing; the literal may span lines. Unterminated strings are
// reported and dropped.
func (l *Lexer) handleString() {
	for l.peek() != '"' && !l.isAtEnd() {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}
	if l.isAtEnd() {
		l.rep.Report(l.line, "Unterminated string.")
		return
	}

	// Closing quote.
	l.advance()

	lit := l.src[l.start+1 : l.cur-1]
	l.addLiteralToken(STRING, Str(lit))
}

// handleNumber scans an integer or a single-decimal-point literal and
// parses it as float64. A dot only belongs to the number when a digit
// follows it.
func (l *Lexer) handleNumber() {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	v, err := strconv.ParseFloat(l.src[l.start:l.cur], 64)
	if err != nil {
		l.rep.Report(l.line, "Could not parse number.")
		return
	}
	l.addLiteralToken(NUMBER, Num(v))
}

func (l *Lexer) handleIdentifier() {
	for isAlphaNum(l.peek()) {
		l.advance()
	}
	text := l.src[l.start:l.cur]
	if tt, ok := keywords[text]; ok {
		l.addToken(tt)
		return
	}
	l.addToken(ID)
}

func (l *Lexer) scanToken() {
	ch := l.advance()
	switch ch {
	case '?':
		// Line comment; leave the newline for handleNewline.
		for l.peek() != '\n' && !l.isAtEnd() {
			l.advance()
		}
	case ' ', '\r', '\t':
		// whitespace
	case '\n':
		l.handleNewline()
	case '(':
		l.addToken(LROUND)
		l.ignoreNewline = true
	case ')':
		l.addToken(RROUND)
		l.ignoreNewline = false
	case '[':
		l.addToken(LSQUARE)
		l.ignoreNewline = true
	case ']':
		l.addToken(RSQUARE)
		l.ignoreNewline = false
	case '{':
		l.addToken(LCURLY)
	case '}':
		l.addToken(RCURLY)
	case ',':
		l.addToken(COMMA)
	case '.':
		l.addToken(DOT)
	case '+':
		if l.matchNext('+') {
			l.addToken(PLUS_PLUS)
		} else if l.matchNext('=') {
			l.addToken(PLUS_ASSIGN)
		} else {
			l.addToken(PLUS)
		}
	case '-':
		if l.matchNext('-') {
			l.addToken(MINUS_MINUS)
		} else if l.matchNext('=') {
			l.addToken(MINUS_ASSIGN)
		} else {
			l.addToken(MINUS)
		}
	case '*':
		l.addToken(MULT)
	case '/':
		l.addToken(DIV)
	case '=':
		l.addToken(ASSIGN)
	case '<':
		if l.matchNext('=') {
			l.addToken(LESS_EQ)
		} else {
			l.addToken(LESS)
		}
	case '>':
		if l.matchNext('=') {
			l.addToken(GREATER_EQ)
		} else {
			l.addToken(GREATER)
		}
	case '$':
		if l.matchNext('<') {
			l.addToken(DOLLAR_LESS)
		} else if l.matchNext('>') {
			l.addToken(DOLLAR_MORE)
		} else {
			l.rep.Report(l.line, "Unexpected character '$'.")
		}
	case '"':
		l.handleString()
	default:
		if isDigit(ch) {
			l.handleNumber()
		} else if isAlpha(ch) {
			l.handleIdentifier()
		} else {
			l.rep.Report(l.line, "Unexpected character '"+string(ch)+"'.")
		}
	}
}

// Scan tokenizes the entire source. It never fails; problems are reported
// and skipped. The returned stream ends with one StatementEnd and one EOF
// regardless of trailing content.
func (l *Lexer) Scan() []Token {
	for !l.isAtEnd() {
		l.start = l.cur
		l.scanToken()
	}

	if prev := l.previousToken(); prev == nil || prev.Type != STMT_END {
		l.tokens = append(l.tokens, Token{Type: STMT_END, Lexeme: "StatementEnd", Line: l.line})
	}
	l.tokens = append(l.tokens, Token{Type: EOF, Lexeme: "EOF", Line: l.line})
	return l.tokens
}
