package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cminus-lang/cminus/parser"
	"github.com/cminus-lang/cminus/printer"
	"github.com/cminus-lang/cminus/scanner"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".cminus_history"
	promptMain  = "cminus> "
	promptCont  = "   ...> "
	banner      = "C- front end. Enter a declaration or an expression; :quit exits."
)

func (a *app) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse fragments interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.repl()
		},
	}
}

func (a *app) repl() error {
	fmt.Fprintln(a.stdout, banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		src, ok := readSnippet(ln)
		if !ok {
			fmt.Fprintln(a.stdout)
			return nil
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if strings.ToLower(trimmed) == ":quit" {
				return nil
			}
			fmt.Fprintln(a.stdout, "unknown command. Type :quit to exit.")
			continue
		}

		fmt.Fprint(a.stdout, a.evalSnippet(src))
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}

// readSnippet reads lines until brackets balance. ok is false at end of
// input.
func readSnippet(ln *liner.State) (string, bool) {
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
		if err != nil {
			// Ctrl-C drops the pending input.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if !incomplete(src) {
			return src, true
		}
	}
}

// incomplete reports whether src has unclosed brackets or ends inside a
// comment.
func incomplete(src string) bool {
	depth := 0
	s := scanner.NewString(src)
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.LPAREN, scanner.LBRACE, scanner.LBRACK:
			depth++
		case scanner.RPAREN, scanner.RBRACE, scanner.RBRACK:
			depth--
		case scanner.ERROR:
			if tok.Lexeme == "/*" {
				return true
			}
		case scanner.ENDFILE:
			return depth > 0
		}
	}
}

// isProgram reports whether src starts with a type specifier.
func isProgram(src string) bool {
	switch scanner.NewString(src).Next().Type {
	case scanner.INT, scanner.VOID:
		return true
	}
	return false
}

// evalSnippet parses src as a program or as a single expression and
// returns the diagnostics and tree.
func (a *app) evalSnippet(src string) string {
	var sb strings.Builder
	s := scanner.NewString(src, a.scannerOptions()...)

	if isProgram(src) {
		// Reading from a string cannot fail.
		res, _ := parser.Parse(s, parser.WithLogger(a.log))
		_ = a.treePrinter().FprintResult(&sb, res.Program, res.Diagnostics)
		return sb.String()
	}

	p := parser.New(s, parser.WithLogger(a.log))
	x, _ := p.ParseExpression()
	_ = printer.FprintDiagnostics(&sb, p.Diagnostics())
	_ = a.treePrinter().Fprint(&sb, x)
	return sb.String()
}
