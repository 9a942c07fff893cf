// Package cahlang implements the cahlang scripting language: a scanner
// with newline-inferred statement boundaries, a recursive-descent parser
// with per-statement error recovery, and a tree-walking interpreter with
// block-scoped environments.
//
// The whole pipeline is total: any input lexes, parses and runs to
// completion, yielding best-effort results plus zero or more diagnostics
// on the Reporter. Nothing in the package panics on user input.
package cahlang

// Version is the interpreter version reported by the CLI.
const Version = "0.3.0"

// Run pushes one source text through the full pipeline using the
// interpreter's persistent globals: scan, parse, interpret. Diagnostics
// land on rep; Run itself never fails.
func Run(src string, ip *Interpreter, rep *Reporter) {
	tokens := NewLexer(src, rep).Scan()
	statements := NewParser(tokens, rep).Parse()
	ip.Interpret(statements)
}
