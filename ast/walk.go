package ast

// Inspect traverses the tree rooted at node in depth-first pre-order,
// calling f for each non-nil node. If f returns false, the children of
// that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, decl := range n.Declarations {
			Inspect(decl, f)
		}
	case *VarDecl, *Param, *NumberExpr:
		// leaves
	case *FunDecl:
		for _, param := range n.Params {
			Inspect(param, f)
		}
		if n.Body != nil {
			Inspect(n.Body, f)
		}
	case *CompoundStmt:
		for _, local := range n.Locals {
			Inspect(local, f)
		}
		for _, stmt := range n.Stmts {
			Inspect(stmt, f)
		}
	case *ExprStmt:
		Inspect(n.X, f)
	case *IfStmt:
		Inspect(n.Cond, f)
		Inspect(n.Then, f)
		Inspect(n.Else, f)
	case *WhileStmt:
		Inspect(n.Cond, f)
		Inspect(n.Body, f)
	case *ReturnStmt:
		Inspect(n.X, f)
	case *AssignExpr:
		Inspect(n.Target, f)
		Inspect(n.Value, f)
	case *RelationalExpr:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *AdditiveExpr:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *TermExpr:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *CallExpr:
		for _, arg := range n.Args {
			Inspect(arg, f)
		}
	case *VarExpr:
		Inspect(n.Index, f)
	default:
		panic("ast: unknown node type in Inspect")
	}
}
