package ast

import (
	"strconv"
	"strings"
)

// SExpr converts a node to its s-expression representation, used by the
// golden tests and the CLI's sexpr output format. A nil node renders as nil.
func SExpr(node Node) string {
	var sb strings.Builder
	writeSExpr(&sb, node)
	return sb.String()
}

func writeSExpr(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		sb.WriteString("nil")
	case *Program:
		sb.WriteString("(program")
		for _, decl := range n.Declarations {
			sb.WriteByte(' ')
			writeSExpr(sb, decl)
		}
		sb.WriteByte(')')
	case *VarDecl:
		sb.WriteString("(var-decl " + quote(n.Name) + " " + string(n.Type))
		if n.IsArray {
			sb.WriteString(" " + strconv.Itoa(n.Size))
		}
		sb.WriteByte(')')
	case *FunDecl:
		sb.WriteString("(fun " + quote(n.Name) + " " + string(n.ReturnType) + " [")
		for i, param := range n.Params {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeSExpr(sb, param)
		}
		sb.WriteString("] ")
		if n.Body == nil {
			sb.WriteString("nil")
		} else {
			writeSExpr(sb, n.Body)
		}
		sb.WriteByte(')')
	case *Param:
		sb.WriteString("(param " + quote(n.Name) + " " + string(n.Type))
		if n.IsArray {
			sb.WriteString(" []")
		}
		sb.WriteByte(')')
	case *CompoundStmt:
		sb.WriteString("(block")
		for _, local := range n.Locals {
			sb.WriteByte(' ')
			writeSExpr(sb, local)
		}
		for _, stmt := range n.Stmts {
			sb.WriteByte(' ')
			writeSExpr(sb, stmt)
		}
		sb.WriteByte(')')
	case *ExprStmt:
		if n.X == nil {
			sb.WriteString("(empty)")
			return
		}
		sb.WriteString("(expr ")
		writeSExpr(sb, n.X)
		sb.WriteByte(')')
	case *IfStmt:
		sb.WriteString("(if ")
		writeSExpr(sb, n.Cond)
		sb.WriteByte(' ')
		writeSExpr(sb, n.Then)
		if n.Else != nil {
			sb.WriteByte(' ')
			writeSExpr(sb, n.Else)
		}
		sb.WriteByte(')')
	case *WhileStmt:
		sb.WriteString("(while ")
		writeSExpr(sb, n.Cond)
		sb.WriteByte(' ')
		writeSExpr(sb, n.Body)
		sb.WriteByte(')')
	case *ReturnStmt:
		if n.X == nil {
			sb.WriteString("(return)")
			return
		}
		sb.WriteString("(return ")
		writeSExpr(sb, n.X)
		sb.WriteByte(')')
	case *AssignExpr:
		sb.WriteString("(assign ")
		writeSExpr(sb, n.Target)
		sb.WriteByte(' ')
		writeSExpr(sb, n.Value)
		sb.WriteByte(')')
	case *RelationalExpr:
		writeBinary(sb, "relational", string(n.Op), n.Left, n.Right)
	case *AdditiveExpr:
		writeBinary(sb, "additive", string(n.Op), n.Left, n.Right)
	case *TermExpr:
		writeBinary(sb, "term", string(n.Op), n.Left, n.Right)
	case *CallExpr:
		sb.WriteString("(call " + quote(n.Name))
		for _, arg := range n.Args {
			sb.WriteByte(' ')
			writeSExpr(sb, arg)
		}
		sb.WriteByte(')')
	case *VarExpr:
		sb.WriteString("(var " + quote(n.Name))
		if n.Index != nil {
			sb.WriteByte(' ')
			writeSExpr(sb, n.Index)
		}
		sb.WriteByte(')')
	case *NumberExpr:
		sb.WriteString(strconv.Itoa(n.Value))
	default:
		panic("ast: unknown node type in SExpr")
	}
}

func writeBinary(sb *strings.Builder, head, op string, left, right Expr) {
	sb.WriteString("(" + head + " " + quote(op) + " ")
	writeSExpr(sb, left)
	sb.WriteByte(' ')
	writeSExpr(sb, right)
	sb.WriteByte(')')
}

func quote(s string) string {
	return "\"" + s + "\""
}
