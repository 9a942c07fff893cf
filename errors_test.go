package cahlang

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReporterOneLineMode(t *testing.T) {
	var out bytes.Buffer
	rep := NewReporter(&out)

	rep.Report(3, "Something happened.")
	assert.Equal(t, "[line 3] Something happened.\n", out.String())
	assert.True(t, rep.HadError())
	assert.Equal(t, 1, rep.Count())
}

func TestReporterSnippetMode(t *testing.T) {
	var out bytes.Buffer
	rep := NewReporter(&out)
	rep.SetSource("offering x = 1\n$< x / \"two\"\n$< x\n")

	rep.Report(2, "Operands of '/' must be numbers.")

	s := out.String()
	assert.Contains(t, s, "[line 2] Operands of '/' must be numbers.")
	assert.Contains(t, s, "   1 | offering x = 1")
	assert.Contains(t, s, "   2 | $< x / \"two\"")
	assert.Contains(t, s, "   3 | $< x")
}

func TestReporterSnippetClampsShortSources(t *testing.T) {
	var out bytes.Buffer
	rep := NewReporter(&out)
	rep.SetSource("only line")

	// Out-of-range lines clamp rather than panic.
	rep.Report(99, "msg")
	rep.Report(0, "msg")
	rep.Report(-4, "msg")

	assert.Equal(t, 3, rep.Count())
	assert.Contains(t, out.String(), "only line")

	rep.SetSource("")
	rep.Report(1, "back to one-line")
	assert.Contains(t, out.String(), "[line 1] back to one-line\n")
}

func TestReporterReset(t *testing.T) {
	rep := NewReporter(&bytes.Buffer{})
	rep.Report(1, "a")
	rep.Report(2, "b")
	assert.Equal(t, 2, rep.Count())

	rep.Reset()
	assert.False(t, rep.HadError())
	assert.Equal(t, 0, rep.Count())
}

func TestReporterReportToken(t *testing.T) {
	var out bytes.Buffer
	rep := NewReporter(&out)

	rep.ReportToken(Token{Type: PLUS, Lexeme: "+", Line: 5}, "bad operands")
	assert.Equal(t, "[line 5] bad operands\n", out.String())
}

func TestErrorMessages(t *testing.T) {
	pe := &ParseError{Token: Token{Line: 2}, Msg: "Expected an expression."}
	assert.Equal(t, "PARSE ERROR at line 2: Expected an expression.", pe.Error())

	rt := &RuntimeError{Token: Token{Line: 9}, Msg: "Undefined variable 'x'."}
	assert.Equal(t, "RUNTIME ERROR at line 9: Undefined variable 'x'.", rt.Error())
}
