package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/cminus-lang/cminus/ast"
	"github.com/cminus-lang/cminus/config"
	"github.com/cminus-lang/cminus/parser"
	"github.com/cminus-lang/cminus/printer"
	"github.com/cminus-lang/cminus/scanner"
	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0"
	GitCommit = "development"
)

// app holds the state shared by all subcommands.
type app struct {
	cfgFile string
	verbose bool

	cfg *config.Config
	log *slog.Logger

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "cminus",
		Short: "C- compiler front end",
		Long: `cminus tokenizes and parses programs written in C-, a small
teaching subset of C.

Commands:
  scan   - write the token listing of a source file
  parse  - write the syntax tree of a source file
  repl   - parse fragments interactively`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: cminus.toml in the working directory)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(a.scanCmd(), a.parseCmd(), a.replCmd(), versionCmd())
	return root
}

// setup loads the configuration and builds the logger.
func (a *app) setup() error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, _, err = config.Discover(".")
	}
	if err != nil {
		return err
	}

	logCfg := a.cfg.Log
	if a.verbose {
		logCfg.Level = "debug"
	}
	a.log = logCfg.NewLogger(a.stderr)
	return nil
}

func (a *app) scannerOptions() []scanner.Option {
	return []scanner.Option{
		scanner.WithMaxTokenLen(a.cfg.Scanner.MaxTokenLen),
		scanner.WithLogger(a.log),
	}
}

func (a *app) treePrinter() *printer.Printer {
	return &printer.Printer{Indent: a.cfg.Printer.Indent}
}

// inputOutput accepts exactly an input path and an output path.
func inputOutput(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: %s", cmd.UseLine())
	}
	return nil
}

func (a *app) scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <input> <output>",
		Short: "Write the token listing of a source file",
		Args:  inputOutput,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]

			s, err := scanner.Open(in, a.scannerOptions()...)
			if err != nil {
				return err
			}
			defer s.Close()

			var buf bytes.Buffer
			if err := scanner.WriteListing(&buf, in, s); err != nil {
				return fmt.Errorf("scan %s: %w", in, err)
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			a.log.Debug("scan finished", "input", in, "output", out)
			fmt.Fprintf(a.stdout, "Scanning completed. Output written to %s\n", out)
			return nil
		},
	}
}

func (a *app) parseCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse <input> <output>",
		Short: "Write the syntax tree of a source file",
		Args:  inputOutput,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			if format != "tree" && format != "sexpr" {
				return fmt.Errorf("unknown format %q (want tree or sexpr)", format)
			}

			s, err := scanner.Open(in, a.scannerOptions()...)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := parser.Parse(s, parser.WithLogger(a.log))
			if err != nil {
				return fmt.Errorf("parse %s: %w", in, err)
			}

			var buf bytes.Buffer
			if format == "sexpr" {
				printer.FprintDiagnostics(&buf, res.Diagnostics)
				buf.WriteString(ast.SExpr(res.Program) + "\n")
			} else {
				a.treePrinter().FprintResult(&buf, res.Program, res.Diagnostics)
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			a.log.Info("parse finished",
				"input", in,
				"declarations", len(res.Program.Declarations),
				"diagnostics", len(res.Diagnostics))
			fmt.Fprintf(a.stdout, "Parsing completed. AST written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "tree", "output format: tree or sexpr")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "cminus v%s\n", Version)
			fmt.Fprintf(w, "  Git Commit: %s\n", GitCommit)
			fmt.Fprintf(w, "  Go Version: %s\n", runtime.Version())
			fmt.Fprintf(w, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
