package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cminus-lang/cminus/config"
	"github.com/cminus-lang/cminus/scanner"
	"github.com/nalgeon/be"
)

// runCLI executes the root command with args and returns what it wrote to
// stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	be.Err(t, os.WriteFile(path, []byte(src), 0o644), nil)
	return path
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	be.Err(t, err, nil)
	return string(data)
}

func TestScanCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeSource(t, dir, "prog.cm", "int x;\n")
	out := filepath.Join(dir, "prog.tokens")

	stdout, err := runCLI(t, "scan", in, out)
	be.Err(t, err, nil)
	be.Equal(t, stdout, "Scanning completed. Output written to "+out+"\n")

	listing := readOutput(t, out)
	be.True(t, strings.HasPrefix(listing, "TOKEN LISTING FOR FILE: "+in+"\n"))
	be.True(t, strings.Contains(listing, scanner.FormatRow(scanner.Token{Type: scanner.INT, Lexeme: "int", Line: 1})))
	be.True(t, strings.Contains(listing, scanner.FormatRow(scanner.Token{Type: scanner.SEMI, Lexeme: ";", Line: 1})))
	be.True(t, strings.HasSuffix(listing, "Scanning completed successfully.\n"))
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		src  string
		args []string
		want string
	}{
		{
			name: "tree",
			src:  "int x;",
			want: "Program [line: 1]\n  Variable: x of type int [line: 1]\n",
		},
		{
			name: "sexpr",
			src:  "int a[3];",
			args: []string{"--format", "sexpr"},
			want: "(program (var-decl \"a\" int 3))\n",
		},
		{
			name: "sexpr with diagnostics",
			src:  "int x",
			args: []string{"-f", "sexpr"},
			want: "Line 1: expected SEMI, found ENDFILE\n\n(program (var-decl \"x\" int))\n",
		},
		{
			name: "tree with diagnostics",
			src:  "x;",
			want: "Line 1: invalid declaration: unexpected ID\n\nProgram [line: 1]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			in := writeSource(t, dir, "prog.cm", tt.src)
			out := filepath.Join(dir, "prog.ast")

			args := append([]string{"parse"}, tt.args...)
			stdout, err := runCLI(t, append(args, in, out)...)
			be.Err(t, err, nil)
			be.Equal(t, stdout, "Parsing completed. AST written to "+out+"\n")
			be.Equal(t, readOutput(t, out), tt.want)
		})
	}
}

func TestParseCommandConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeSource(t, dir, "cminus.yaml", "printer:\n  indent: 4\n")
	in := writeSource(t, dir, "prog.cm", "int x;")
	out := filepath.Join(dir, "prog.ast")

	_, err := runCLI(t, "--config", cfg, "parse", in, out)
	be.Err(t, err, nil)
	be.Equal(t, readOutput(t, out), "Program [line: 1]\n    Variable: x of type int [line: 1]\n")
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeSource(t, dir, "prog.cm", "int x;")
	out := filepath.Join(dir, "out")

	_, err := runCLI(t, "scan", in)
	be.Err(t, err, "usage: cminus scan <input> <output>")

	_, err = runCLI(t, "parse")
	be.Err(t, err, "usage: cminus parse <input> <output>")

	_, err = runCLI(t, "parse", "--format", "json", in, out)
	be.Err(t, err, `unknown format "json"`)

	_, err = runCLI(t, "scan", filepath.Join(dir, "missing.cm"), out)
	be.Err(t, err, os.ErrNotExist)

	_, err = runCLI(t, "--config", filepath.Join(dir, "missing.toml"), "scan", in, out)
	be.Err(t, err, os.ErrNotExist)
}

func TestVersionCommand(t *testing.T) {
	stdout, err := runCLI(t, "version")
	be.Err(t, err, nil)
	be.True(t, strings.HasPrefix(stdout, "cminus v"+Version+"\n"))
	be.True(t, strings.Contains(stdout, "Git Commit: "+GitCommit))
}

func testApp() *app {
	return &app{
		cfg: config.Default(),
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestEvalSnippet(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1+2", "Operator: + [line: 1]\n  Left:\n    Number: 1 [line: 1]\n  Right:\n    Number: 2 [line: 1]\n"},
		{"int x;", "Program [line: 1]\n  Variable: x of type int [line: 1]\n"},
		{"1 2", "Line 1: expected ENDFILE, found NUM\n\nNumber: 1 [line: 1]\n"},
		{"void v;", "Program [line: 1]\n  Variable: v of type void [line: 1]\n"},
	}

	a := testApp()
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			be.Equal(t, a.evalSnippet(tt.src), tt.want)
		})
	}
}

func TestIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"x + 1", false},
		{"f(1,", true},
		{"void f(void) {", true},
		{"void f(void) {\n  return;\n}", false},
		{"a[i", true},
		{"x /* still", true},
		{"x /* done */", false},
		{")", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			be.Equal(t, incomplete(tt.src), tt.want)
		})
	}
}

func TestIsProgram(t *testing.T) {
	be.True(t, isProgram("int x;"))
	be.True(t, isProgram("  void f(void) {}"))
	be.True(t, !isProgram("x = 1"))
	be.True(t, !isProgram(""))
}
