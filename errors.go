// errors.go — diagnostic sink and user-facing error rendering.
//
// Every recoverable problem in the pipeline (lexical, parse, runtime) is
// funneled through a Reporter, which writes a diagnostic and never aborts
// the caller. The structured error types below carry the offending token
// so the line number survives to the report.
//
// When the Reporter knows the source text (file mode sets it), each
// diagnostic is rendered as a numbered snippet with one line of context on
// either side:
//
//	[line 3] Operands of '/' must be numbers.
//
//	   2 | offering x = 1
//	   3 | $< x / "two"
//	   4 | $< x
//
// Without source it falls back to the plain one-line form.
package cahlang

import (
	"fmt"
	"io"
	"strings"
)

// Reporter is the diagnostic collaborator shared by the lexer, parser and
// interpreter. It writes to a stream and counts what it wrote; it never
// stops the pipeline.
type Reporter struct {
	out   io.Writer
	src   string
	count int
}

// NewReporter returns a Reporter writing to out (typically os.Stderr).
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// SetSource enables snippet rendering against the given source text.
// Pass "" to return to one-line diagnostics.
func (r *Reporter) SetSource(src string) {
	r.src = src
}

// Report emits one diagnostic attributed to a 1-based source line.
func (r *Reporter) Report(line int, msg string) {
	r.count++
	if r.src == "" {
		fmt.Fprintf(r.out, "[line %d] %s\n", line, msg)
		return
	}
	fmt.Fprint(r.out, snippetString(r.src, line, msg))
}

// ReportToken attributes the diagnostic to the token's line.
func (r *Reporter) ReportToken(tok Token, msg string) {
	r.Report(tok.Line, msg)
}

// HadError reports whether any diagnostic has been emitted since the last
// Reset. File mode uses it for the exit code.
func (r *Reporter) HadError() bool { return r.count > 0 }

// Count returns the number of diagnostics emitted since the last Reset.
func (r *Reporter) Count() int { return r.count }

// Reset clears the diagnostic counter (REPL turns reset between lines).
func (r *Reporter) Reset() { r.count = 0 }

// ParseError is a syntax failure at a specific token. The parser reports
// it and then resynchronizes; it never escapes Parse.
type ParseError struct {
	Token Token
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at line %d: %s", e.Token.Line, e.Msg)
}

// RuntimeError is an execution failure (type mismatch, undefined variable,
// invalid postfix/assignment target). It aborts only the current top-level
// statement.
type RuntimeError struct {
	Token Token
	Msg   string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at line %d: %s", e.Token.Line, e.Msg)
}

// snippetString builds the header plus up to one line of context on each
// side of the failing line. Out-of-range lines are clamped so rendering
// never panics on short or empty sources.
func snippetString(src string, line int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[line %d] %s\n\n", line, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
