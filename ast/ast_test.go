package ast

import (
	"testing"

	"github.com/nalgeon/be"
)

func sampleProgram() *Program {
	// int a[10];
	// int main(int x, int b[]) {
	//   int y;
	//   if (x < 2) y = f(x, 3); else return;
	//   while (y) ;
	//   return b[y] * (1 + 2);
	// }
	return &Program{
		LineNo: 1,
		Declarations: []Decl{
			NewArrayDecl(1, "a", TypeInt, 10),
			&FunDecl{
				LineNo:     2,
				Name:       "main",
				ReturnType: TypeInt,
				Params: []*Param{
					{LineNo: 2, Name: "x", Type: TypeInt},
					{LineNo: 2, Name: "b", Type: TypeInt, IsArray: true},
				},
				Body: &CompoundStmt{
					LineNo: 2,
					Locals: []*VarDecl{NewVarDecl(3, "y", TypeInt)},
					Stmts: []Stmt{
						&IfStmt{
							LineNo: 4,
							Cond: &RelationalExpr{
								LineNo: 4,
								Left:   &VarExpr{LineNo: 4, Name: "x"},
								Op:     OpLT,
								Right:  &NumberExpr{LineNo: 4, Value: 2},
							},
							Then: &ExprStmt{LineNo: 4, X: &AssignExpr{
								LineNo: 4,
								Target: &VarExpr{LineNo: 4, Name: "y"},
								Value: &CallExpr{LineNo: 4, Name: "f", Args: []Expr{
									&VarExpr{LineNo: 4, Name: "x"},
									&NumberExpr{LineNo: 4, Value: 3},
								}},
							}},
							Else: &ReturnStmt{LineNo: 4},
						},
						&WhileStmt{
							LineNo: 5,
							Cond:   &VarExpr{LineNo: 5, Name: "y"},
							Body:   &ExprStmt{LineNo: 5},
						},
						&ReturnStmt{LineNo: 6, X: &TermExpr{
							LineNo: 6,
							Left: &VarExpr{LineNo: 6, Name: "b", Index: &VarExpr{
								LineNo: 6, Name: "y",
							}},
							Op: OpTimes,
							Right: &AdditiveExpr{
								LineNo: 6,
								Left:   &NumberExpr{LineNo: 6, Value: 1},
								Op:     OpPlus,
								Right:  &NumberExpr{LineNo: 6, Value: 2},
							},
						}},
					},
				},
			},
		},
	}
}

func TestSExprProgram(t *testing.T) {
	want := `(program (var-decl "a" int 10) ` +
		`(fun "main" int [(param "x" int) (param "b" int [])] ` +
		`(block (var-decl "y" int) ` +
		`(if (relational "<" (var "x") 2) (expr (assign (var "y") (call "f" (var "x") 3))) (return)) ` +
		`(while (var "y") (empty)) ` +
		`(return (term "*" (var "b" (var "y")) (additive "+" 1 2))))))`
	be.Equal(t, SExpr(sampleProgram()), want)
}

func TestSExprNil(t *testing.T) {
	be.Equal(t, SExpr(nil), "nil")
	be.Equal(t, SExpr(&IfStmt{LineNo: 1, Cond: &NumberExpr{Value: 1}}), "(if 1 nil)")
	be.Equal(t, SExpr(&FunDecl{Name: "f", ReturnType: TypeVoid}), `(fun "f" void [] nil)`)
}

func TestInspectVisitsEveryNode(t *testing.T) {
	counts := map[string]int{}
	Inspect(sampleProgram(), func(n Node) bool {
		switch n.(type) {
		case *VarExpr:
			counts["var"]++
		case *NumberExpr:
			counts["number"]++
		case Stmt:
			counts["stmt"]++
		case Decl:
			counts["decl"]++
		}
		return true
	})

	be.Equal(t, counts["var"], 6)
	be.Equal(t, counts["number"], 4)
	be.Equal(t, counts["stmt"], 7) // block, if, expr, return, while, empty, return
	be.Equal(t, counts["decl"], 3) // a, main, y
}

func TestInspectSkipsChildren(t *testing.T) {
	visited := 0
	Inspect(sampleProgram(), func(n Node) bool {
		visited++
		_, isFun := n.(*FunDecl)
		return !isFun
	})
	be.Equal(t, visited, 3) // program, a, main
}

func TestVarDeclConstructors(t *testing.T) {
	scalar := NewVarDecl(3, "x", TypeInt)
	be.True(t, !scalar.IsArray)
	be.Equal(t, scalar.Size, 0)

	array := NewArrayDecl(4, "a", TypeInt, 7)
	be.True(t, array.IsArray)
	be.Equal(t, array.Size, 7)
	be.Equal(t, array.Line(), 4)
}

func TestVarExprIsArray(t *testing.T) {
	be.True(t, !(&VarExpr{Name: "x"}).IsArray())
	be.True(t, (&VarExpr{Name: "a", Index: &NumberExpr{}}).IsArray())
}
