// Package golden computes the text that the Markdown test suites under
// test/ compare against, and rewrites stale expectations in place.
package golden

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cminus-lang/cminus/ast"
	"github.com/cminus-lang/cminus/parser"
	"github.com/cminus-lang/cminus/printer"
	"github.com/cminus-lang/cminus/scanner"
	"github.com/cminus-lang/cminus/sexy"
)

// Result is the outcome of parsing a test case's input.
type Result struct {
	Node  ast.Node
	Diags parser.Diagnostics
}

// Parse runs the test case input through the parser entry point its fence
// language names.
func Parse(tc sexy.TestCase) (Result, error) {
	p := parser.New(scanner.NewString(tc.Input))

	switch tc.InputType {
	case sexy.InputTypeExpr:
		x, err := p.ParseExpression()
		if err != nil {
			return Result{}, err
		}
		return Result{Node: x, Diags: p.Diagnostics()}, nil
	case sexy.InputTypeProgram:
		prog, err := p.ParseProgram()
		if err != nil {
			return Result{}, err
		}
		return Result{Node: prog, Diags: p.Diagnostics()}, nil
	default:
		return Result{}, fmt.Errorf("unknown input type: %s", tc.InputType)
	}
}

// Render returns the actual text for an assertion of type typ. For ast
// assertions it is the s-expression of the tree.
func Render(tc sexy.TestCase, res Result, typ sexy.AssertionType) (string, error) {
	switch typ {
	case sexy.AssertionTypeAST:
		return ast.SExpr(res.Node), nil

	case sexy.AssertionTypeTree:
		var sb strings.Builder
		if prog, ok := res.Node.(*ast.Program); ok {
			_ = printer.FprintResult(&sb, prog, res.Diags)
		} else {
			_ = printer.FprintDiagnostics(&sb, res.Diags)
			_ = printer.Fprint(&sb, res.Node)
		}
		return strings.TrimRight(sb.String(), "\n"), nil

	case sexy.AssertionTypeDiagnostics:
		return res.Diags.String(), nil

	case sexy.AssertionTypeTokens:
		return Tokens(tc.Input)

	default:
		return "", fmt.Errorf("unknown assertion type: %s", typ)
	}
}

// Tokens renders the tokens of src one per line as "line TYPE lexeme".
func Tokens(src string) (string, error) {
	tokens, err := scanner.All(scanner.NewString(src))
	if err != nil {
		return "", err
	}

	rows := make([]string, len(tokens))
	for i, tok := range tokens {
		rows[i] = strings.TrimRight(fmt.Sprintf("%d %s %s", tok.Line, tok.Type, tok.Lexeme), " ")
	}
	return strings.Join(rows, "\n"), nil
}

type edit struct {
	start, end int // 0-based line range being replaced
	lines      []string
}

// Update recomputes every tree, diagnostics and tokens fence in a Markdown
// suite and returns the rewritten document and the number of fences that
// changed. ast fences are patterns and are left alone, as are empty
// fences, whose position goldmark does not report.
func Update(content string) (string, int, error) {
	testCases, err := sexy.ExtractTestCases(content)
	if err != nil {
		return "", 0, err
	}

	var edits []edit
	for _, tc := range testCases {
		res, err := Parse(tc)
		if err != nil {
			return "", 0, fmt.Errorf("test '%s': %w", tc.Name, err)
		}

		for _, assertion := range tc.Assertions {
			if assertion.Type == sexy.AssertionTypeAST || assertion.Content == "" {
				continue
			}
			want, err := Render(tc, res, assertion.Type)
			if err != nil {
				return "", 0, fmt.Errorf("test '%s': %w", tc.Name, err)
			}
			if want == assertion.Content {
				continue
			}

			start := assertion.Line - 1
			edits = append(edits, edit{
				start: start,
				end:   start + len(strings.Split(assertion.Content, "\n")),
				lines: splitLines(want),
			})
		}
	}
	if len(edits) == 0 {
		return content, 0, nil
	}

	// Apply from the bottom so earlier line numbers stay valid.
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })

	lines := strings.Split(content, "\n")
	for _, e := range edits {
		if e.start < 0 || e.end > len(lines) {
			return "", 0, fmt.Errorf("line %d: fence out of range", e.start+1)
		}
		tail := append([]string(nil), lines[e.end:]...)
		lines = append(append(lines[:e.start], e.lines...), tail...)
	}
	return strings.Join(lines, "\n"), len(edits), nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
