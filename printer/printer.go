// Package printer renders syntax trees as indented text.
package printer

import (
	"io"
	"strconv"
	"strings"

	"github.com/cminus-lang/cminus/ast"
	"github.com/cminus-lang/cminus/parser"
)

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 2

// NoTree is printed in place of a tree when parsing produced no root.
const NoTree = "No valid AST was constructed."

// Printer writes trees with a fixed indentation unit. The zero value uses
// DefaultIndent.
type Printer struct {
	Indent int
}

// Fprint writes the tree rooted at node to w. A nil node writes NoTree.
func Fprint(w io.Writer, node ast.Node) error {
	return (&Printer{}).Fprint(w, node)
}

// Sprint returns the tree rooted at node as a string.
func Sprint(node ast.Node) string {
	return (&Printer{}).Sprint(node)
}

// FprintResult writes the diagnostics header followed by the tree.
func FprintResult(w io.Writer, prog *ast.Program, diags parser.Diagnostics) error {
	return (&Printer{}).FprintResult(w, prog, diags)
}

// FprintDiagnostics writes one line per diagnostic followed by a blank
// line. Nothing is written when diags is empty.
func FprintDiagnostics(w io.Writer, diags parser.Diagnostics) error {
	_, err := io.WriteString(w, diagnosticsHeader(diags))
	return err
}

func diagnosticsHeader(diags parser.Diagnostics) string {
	if !diags.HasErrors() {
		return ""
	}
	return diags.String() + "\n\n"
}

func (p *Printer) Fprint(w io.Writer, node ast.Node) error {
	_, err := io.WriteString(w, p.Sprint(node))
	return err
}

func (p *Printer) Sprint(node ast.Node) string {
	tw := p.newWriter()
	tw.root(node)
	return tw.sb.String()
}

// FprintResult writes one line per diagnostic and a blank line when there
// are any, then the tree rooted at prog.
func (p *Printer) FprintResult(w io.Writer, prog *ast.Program, diags parser.Diagnostics) error {
	tw := p.newWriter()
	tw.sb.WriteString(diagnosticsHeader(diags))
	if prog == nil {
		tw.root(nil)
	} else {
		tw.root(prog)
	}
	_, err := io.WriteString(w, tw.sb.String())
	return err
}

func (p *Printer) newWriter() *treeWriter {
	unit := p.Indent
	if unit < 1 {
		unit = DefaultIndent
	}
	return &treeWriter{unit: unit}
}

type treeWriter struct {
	sb   strings.Builder
	unit int
}

func (tw *treeWriter) root(node ast.Node) {
	if node == nil {
		tw.sb.WriteString(NoTree + "\n")
		return
	}
	tw.node(node, 0)
}

func (tw *treeWriter) label(depth int, text string) {
	tw.sb.WriteString(strings.Repeat(" ", depth*tw.unit))
	tw.sb.WriteString(text)
	tw.sb.WriteByte('\n')
}

// labelAt writes a node label ending in its line number.
func (tw *treeWriter) labelAt(depth int, text string, line int) {
	tw.label(depth, text+" [line: "+strconv.Itoa(line)+"]")
}

// section writes a section heading below a node at depth and its member
// one level further in. A nil member leaves the section empty.
func (tw *treeWriter) section(depth int, name string, member ast.Node) {
	tw.label(depth+1, name+":")
	if member != nil {
		tw.node(member, depth+2)
	}
}

func (tw *treeWriter) node(node ast.Node, depth int) {
	switch n := node.(type) {
	case *ast.Program:
		tw.labelAt(depth, "Program", n.Line())
		for _, decl := range n.Declarations {
			tw.node(decl, depth+1)
		}

	case *ast.VarDecl:
		text := "Variable: " + n.Name
		if n.IsArray {
			text += "[" + strconv.Itoa(n.Size) + "]"
		}
		tw.labelAt(depth, text+" of type "+string(n.Type), n.Line())

	case *ast.FunDecl:
		tw.labelAt(depth, "Function: "+n.Name+" returns "+string(n.ReturnType), n.Line())
		tw.label(depth+1, "Parameters:")
		if len(n.Params) == 0 {
			tw.label(depth+2, "void")
		}
		for _, param := range n.Params {
			tw.node(param, depth+2)
		}
		tw.label(depth+1, "Body:")
		if n.Body != nil {
			tw.node(n.Body, depth+2)
		}

	case *ast.Param:
		text := "Parameter: " + n.Name
		if n.IsArray {
			text += "[]"
		}
		tw.labelAt(depth, text+" of type "+string(n.Type), n.Line())

	case *ast.CompoundStmt:
		tw.labelAt(depth, "Compound Statement", n.Line())
		if len(n.Locals) > 0 {
			tw.label(depth+1, "Local Declarations:")
			for _, local := range n.Locals {
				tw.node(local, depth+2)
			}
		}
		if len(n.Stmts) > 0 {
			tw.label(depth+1, "Statements:")
			for _, stmt := range n.Stmts {
				tw.node(stmt, depth+2)
			}
		}

	case *ast.ExprStmt:
		if n.X == nil {
			tw.labelAt(depth, "Empty Statement", n.Line())
			return
		}
		tw.labelAt(depth, "Expression Statement", n.Line())
		tw.node(n.X, depth+1)

	case *ast.IfStmt:
		tw.labelAt(depth, "If Statement", n.Line())
		tw.section(depth, "Condition", n.Cond)
		tw.section(depth, "Then Branch", n.Then)
		if n.Else != nil {
			tw.section(depth, "Else Branch", n.Else)
		}

	case *ast.WhileStmt:
		tw.labelAt(depth, "While Statement", n.Line())
		tw.section(depth, "Condition", n.Cond)
		tw.section(depth, "Body", n.Body)

	case *ast.ReturnStmt:
		tw.labelAt(depth, "Return Statement", n.Line())
		if n.X != nil {
			tw.section(depth, "Expression", n.X)
		}

	case *ast.AssignExpr:
		tw.labelAt(depth, "Assign", n.Line())
		tw.section(depth, "Left", n.Target)
		tw.section(depth, "Right", n.Value)

	case *ast.RelationalExpr:
		tw.labelAt(depth, "Comparison: "+string(n.Op), n.Line())
		tw.section(depth, "Left", n.Left)
		tw.section(depth, "Right", n.Right)

	case *ast.AdditiveExpr:
		tw.labelAt(depth, "Operator: "+string(n.Op), n.Line())
		tw.section(depth, "Left", n.Left)
		tw.section(depth, "Right", n.Right)

	case *ast.TermExpr:
		tw.labelAt(depth, "Operator: "+string(n.Op), n.Line())
		tw.section(depth, "Left", n.Left)
		tw.section(depth, "Right", n.Right)

	case *ast.CallExpr:
		tw.labelAt(depth, "Call to function: "+n.Name, n.Line())
		if len(n.Args) > 0 {
			tw.label(depth+1, "Arguments:")
			for _, arg := range n.Args {
				tw.node(arg, depth+2)
			}
		}

	case *ast.VarExpr:
		tw.labelAt(depth, "Variable: "+n.Name, n.Line())
		if n.Index != nil {
			tw.section(depth, "Index", n.Index)
		}

	case *ast.NumberExpr:
		tw.labelAt(depth, "Number: "+strconv.Itoa(n.Value), n.Line())

	default:
		panic("printer: unknown node type")
	}
}
