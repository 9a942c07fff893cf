package cahlang

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSrc(t *testing.T, src string) ([]Stmt, *Reporter, *bytes.Buffer) {
	t.Helper()
	var diag bytes.Buffer
	rep := NewReporter(&diag)
	tokens := NewLexer(src, rep).Scan()
	return NewParser(tokens, rep).Parse(), rep, &diag
}

// parseExpr parses a single expression statement and returns its tree.
func parseExpr(t *testing.T, src string) Expr {
	t.Helper()
	stmts, rep, diag := parseSrc(t, src)
	require.False(t, rep.HadError(), "source %q: %s", src, diag.String())
	require.Len(t, stmts, 1)
	es, ok := stmts[0].(*ExpressionStmt)
	require.True(t, ok, "want expression statement, got %T", stmts[0])
	return es.Expr
}

func TestParserPrecedence(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"1 + 2 + 3", "(+ (+ 1 2) 3)"},
		{"8 / 4 / 2", "(/ (/ 8 4) 2)"},
		{"1 + 2 < 3 + 4", "(< (+ 1 2) (+ 3 4))"},
		{"a < b is c < d", "(is (< a b) (< c d))"},
		{"a is b not c", "(not (is a b) c)"},
		{"-x * 2", "(* (- x) 2)"},
		{"not a is b", "(is (not a) b)"},
		{"a or b and c", "(and (or a b) c)"},
		{"a is b or c is d", "(or (is a b) (is c d))"},
		{"(1 + 2) * 3", "(* (group (+ 1 2)) 3)"},
		{"x++", "(post++ x)"},
		{"-x++", "(- (post++ x))"},
		{"x-- - 1", "(- (post-- x) 1)"},
		{"a = b = 1", "(= a (= b 1))"},
		{"a = 1 or 2", "(= a (or 1 2))"},
		{"x += 2", "(= x (+ x 2))"},
		{"x -= 2 * y", "(= x (- x (* 2 y)))"},
		{`"s" + none + true`, `(+ (+ "s" none) true)`},
	}

	for _, c := range cases {
		expr := parseExpr(t, c.src)
		assert.Equal(t, c.want, FormatExpr(expr), "source: %s", c.src)
	}
}

func TestParserStatements(t *testing.T) {
	cases := []struct {
		src  string
		want []string
	}{
		{
			"offering x\n",
			[]string{"(offering x)"},
		},
		{
			"offering x = 1 + 2\n",
			[]string{"(offering x (+ 1 2))"},
		},
		{
			"$< x\n",
			[]string{"(print x)"},
		},
		{
			"{\noffering x = 1\n$< x\n}\n",
			[]string{"(block (offering x 1) (print x))"},
		},
		{
			"if a < b {\n$< a\n} else {\n$< b\n}\n",
			[]string{"(if (< a b) (block (print a)) (block (print b)))"},
		},
		{
			"if a {\n$< a\n}\n",
			[]string{"(if a (block (print a)))"},
		},
		{
			"while i < 10 {\ni = i + 1\n}\n",
			[]string{"(while (< i 10) (block (= i (+ i 1))))"},
		},
		{
			"offering x = 1\n$< x\nx = 2\n",
			[]string{"(offering x 1)", "(print x)", "(= x 2)"},
		},
	}

	for _, c := range cases {
		stmts, rep, diag := parseSrc(t, c.src)
		require.False(t, rep.HadError(), "source %q: %s", c.src, diag.String())
		require.Len(t, stmts, len(c.want), "source: %q", c.src)
		for i, s := range stmts {
			assert.Equal(t, c.want[i], FormatStmt(s), "source: %q", c.src)
		}
	}
}

func TestParserElseOnNextLine(t *testing.T) {
	src := "if a {\n$< 1\n}\nelse {\n$< 2\n}\n"
	stmts, rep, diag := parseSrc(t, src)
	require.False(t, rep.HadError(), diag.String())
	require.Len(t, stmts, 1)
	assert.Equal(t, "(if a (block (print 1)) (block (print 2)))", FormatStmt(stmts[0]))
}

func TestParserInvalidAssignmentTarget(t *testing.T) {
	// Not a hard error: the diagnostic is reported and the unmodified
	// expression comes back, so parsing continues.
	stmts, rep, diag := parseSrc(t, "1 + 2 = 3\n$< 4\n")
	assert.Equal(t, 1, rep.Count())
	assert.Contains(t, diag.String(), "Invalid assignment target.")
	require.Len(t, stmts, 2)
	es, ok := stmts[0].(*ExpressionStmt)
	require.True(t, ok)
	assert.Equal(t, "(+ 1 2)", FormatExpr(es.Expr))
	assert.Equal(t, "(print 4)", FormatStmt(stmts[1]))
}

func TestParserRecoverySubstitutesNoop(t *testing.T) {
	// One malformed statement, then a well-formed one: exactly one
	// diagnostic, and the survivor still parses.
	stmts, rep, diag := parseSrc(t, "offering = 5\n$< 1\n")
	assert.Equal(t, 1, rep.Count())
	assert.Contains(t, diag.String(), "Expected variable name.")
	require.Len(t, stmts, 2)

	es, ok := stmts[0].(*ExpressionStmt)
	require.True(t, ok, "recovered statement should be a no-op expression")
	lit, ok := es.Expr.(*LiteralExpr)
	require.True(t, ok)
	assert.Equal(t, None, lit.Value)

	assert.Equal(t, "(print 1)", FormatStmt(stmts[1]))
}

func TestParserTotalOnGarbage(t *testing.T) {
	// Parse never panics and always returns a complete statement slice.
	inputs := []string{
		"",
		"\n\n",
		")(",
		"$<",
		"offering",
		"offering offering offering",
		"} } }",
		"if {",
		"while",
		"(1 + ",
		"= = =",
		"$> x\n",
		"ritual summon()\n",
	}
	for _, src := range inputs {
		stmts, _, _ := parseSrc(t, src)
		for _, s := range stmts {
			assert.NotNil(t, s, "source: %q", src)
		}
	}
}

func TestParserEmptyInputIsClean(t *testing.T) {
	stmts, rep, _ := parseSrc(t, "")
	assert.Empty(t, stmts)
	assert.False(t, rep.HadError())

	stmts, rep, _ = parseSrc(t, "\n\n\n")
	assert.Empty(t, stmts)
	assert.False(t, rep.HadError())
}

func TestParserMultilineExpressions(t *testing.T) {
	expr := parseExpr(t, "(1 +\n2) * 3\n")
	assert.Equal(t, "(* (group (+ 1 2)) 3)", FormatExpr(expr))

	expr = parseExpr(t, "1 +\n2\n")
	assert.Equal(t, "(+ 1 2)", FormatExpr(expr))
}

func TestParserErrorAttributesLine(t *testing.T) {
	_, rep, diag := parseSrc(t, "offering x = 1\noffering = 2\n")
	assert.Equal(t, 1, rep.Count())
	assert.Contains(t, diag.String(), "[line 2]")
}
