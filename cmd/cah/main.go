// cah — cahlang command line: script runner, REPL and AST dumper.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	cahlang "github.com/F0903/cahlang"
)

const (
	appName     = "cah"
	historyFile = ".cah_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("cahlang %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", cahlang.Version)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "ast":
		os.Exit(cmdAst(os.Args[2:]))
	case "version":
		fmt.Println(cahlang.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`cahlang %s

Usage:
  %s run <file.cah>     Run a script.
  %s repl               Start the REPL.
  %s ast <file.cah>     Print the parsed program as S-expressions.
  %s version            Print the version.

`, cahlang.Version, appName, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.cah>\n", appName)
		return 2
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, args[0], err)
		return 1
	}

	rep := cahlang.NewReporter(os.Stderr)
	rep.SetSource(string(src))
	ip := cahlang.NewInterpreter(os.Stdout, rep)
	cahlang.Run(string(src), ip, rep)

	if rep.HadError() {
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// ast
// -----------------------------------------------------------------------------

func cmdAst(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s ast <file.cah>\n", appName)
		return 2
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, args[0], err)
		return 1
	}

	rep := cahlang.NewReporter(os.Stderr)
	rep.SetSource(string(src))
	tokens := cahlang.NewLexer(string(src), rep).Scan()
	statements := cahlang.NewParser(tokens, rep).Parse()
	for _, s := range statements {
		fmt.Println(cahlang.FormatStmt(s))
	}

	if rep.HadError() {
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	rep := cahlang.NewReporter(os.Stderr)
	ip := cahlang.NewInterpreter(os.Stdout, rep)

	for {
		code, ok := readStatement(ln)
		if !ok {
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		// Each turn starts with a clean diagnostic count; declarations
		// persist in the interpreter's globals across turns.
		rep.Reset()
		cahlang.Run(code+"\n", ip, rep)
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readStatement reads lines until the buffered input has no open
// brackets or unterminated string, so blocks can span REPL lines.
func readStatement(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !needsMore(b.String()) {
			return b.String(), true
		}
	}
}

// needsMore scans the buffered input, tracking bracket depth, string
// state and `?` comments, and reports whether the statement is still
// open.
func needsMore(src string) bool {
	depth := 0
	inString := false
	inComment := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		if inComment {
			if c == '\n' {
				inComment = false
			}
			continue
		}
		if inString {
			if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '?':
			inComment = true
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
	}
	return depth > 0 || inString
}
