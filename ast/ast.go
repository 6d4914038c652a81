// Package ast defines the syntax tree produced by the C- parser.
//
// The node set is closed: Decl, Stmt and Expr are implemented only by the
// types in this package, so a type switch over them can be exhaustive.
// Nodes are built once by the parser and are read-only afterwards.
package ast

// Node is implemented by every syntax tree node.
type Node interface {
	// Line is the source line of the first token of the node's production.
	Line() int
}

// Decl is a top-level declaration: *VarDecl or *FunDecl.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement: *CompoundStmt, *ExprStmt, *IfStmt, *WhileStmt or
// *ReturnStmt.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression: *AssignExpr, *RelationalExpr, *AdditiveExpr,
// *TermExpr, *CallExpr, *VarExpr or *NumberExpr.
type Expr interface {
	Node
	exprNode()
}

// TypeSpecifier is a declared type.
type TypeSpecifier string

const (
	TypeInt  TypeSpecifier = "int"
	TypeVoid TypeSpecifier = "void"
)

// RelOp is a relational operator.
type RelOp string

const (
	OpLT  RelOp = "<"
	OpLTE RelOp = "<="
	OpGT  RelOp = ">"
	OpGTE RelOp = ">="
	OpEQ  RelOp = "=="
	OpNEQ RelOp = "!="
)

// AddOp is an additive operator.
type AddOp string

const (
	OpPlus  AddOp = "+"
	OpMinus AddOp = "-"
)

// MulOp is a multiplicative operator.
type MulOp string

const (
	OpTimes  MulOp = "*"
	OpDivide MulOp = "/"
)

// Program is the root of the tree.
type Program struct {
	LineNo       int
	Declarations []Decl
}

// VarDecl declares a scalar or, when IsArray is set, an array of Size
// elements. Size is zero and meaningless for scalars.
type VarDecl struct {
	LineNo  int
	Name    string
	Type    TypeSpecifier
	IsArray bool
	Size    int
}

// NewVarDecl returns a scalar variable declaration.
func NewVarDecl(line int, name string, typ TypeSpecifier) *VarDecl {
	return &VarDecl{LineNo: line, Name: name, Type: typ}
}

// NewArrayDecl returns an array declaration of size elements.
func NewArrayDecl(line int, name string, typ TypeSpecifier, size int) *VarDecl {
	return &VarDecl{LineNo: line, Name: name, Type: typ, IsArray: true, Size: size}
}

// FunDecl is a function definition. Body is never nil in a tree returned by
// the parser.
type FunDecl struct {
	LineNo     int
	Name       string
	ReturnType TypeSpecifier
	Params     []*Param
	Body       *CompoundStmt
}

// Param is a function parameter. Array parameters carry no size.
type Param struct {
	LineNo  int
	Name    string
	Type    TypeSpecifier
	IsArray bool
}

// CompoundStmt is a braced block: local declarations, then statements.
type CompoundStmt struct {
	LineNo int
	Locals []*VarDecl
	Stmts  []Stmt
}

// ExprStmt is an expression followed by ';'. X is nil for an empty
// statement.
type ExprStmt struct {
	LineNo int
	X      Expr
}

// IfStmt is a selection statement. Else is nil when there is no else
// branch. Then is nil only when the branch could not be parsed.
type IfStmt struct {
	LineNo int
	Cond   Expr
	Then   Stmt
	Else   Stmt
}

// WhileStmt is an iteration statement. Body is nil only when it could not
// be parsed.
type WhileStmt struct {
	LineNo int
	Cond   Expr
	Body   Stmt
}

// ReturnStmt returns from a function. X is nil for a bare return.
type ReturnStmt struct {
	LineNo int
	X      Expr
}

// AssignExpr is Target = Value. Assignment is right-associative.
type AssignExpr struct {
	LineNo int
	Target *VarExpr
	Value  Expr
}

// RelationalExpr compares two additive expressions. It never nests
// directly: a relational expression has at most one relational operator.
type RelationalExpr struct {
	LineNo int
	Left   Expr
	Op     RelOp
	Right  Expr
}

// AdditiveExpr is Left + Right or Left - Right, left-associative.
type AdditiveExpr struct {
	LineNo int
	Left   Expr
	Op     AddOp
	Right  Expr
}

// TermExpr is Left * Right or Left / Right, left-associative.
type TermExpr struct {
	LineNo int
	Left   Expr
	Op     MulOp
	Right  Expr
}

// CallExpr calls the function Name.
type CallExpr struct {
	LineNo int
	Name   string
	Args   []Expr
}

// VarExpr references a variable, or one element of an array when Index is
// set.
type VarExpr struct {
	LineNo int
	Name   string
	Index  Expr
}

// IsArray reports whether v is an indexed access.
func (v *VarExpr) IsArray() bool { return v.Index != nil }

// NumberExpr is an integer literal.
type NumberExpr struct {
	LineNo int
	Value  int
}

func (n *Program) Line() int        { return n.LineNo }
func (n *VarDecl) Line() int        { return n.LineNo }
func (n *FunDecl) Line() int        { return n.LineNo }
func (n *Param) Line() int          { return n.LineNo }
func (n *CompoundStmt) Line() int   { return n.LineNo }
func (n *ExprStmt) Line() int       { return n.LineNo }
func (n *IfStmt) Line() int         { return n.LineNo }
func (n *WhileStmt) Line() int      { return n.LineNo }
func (n *ReturnStmt) Line() int     { return n.LineNo }
func (n *AssignExpr) Line() int     { return n.LineNo }
func (n *RelationalExpr) Line() int { return n.LineNo }
func (n *AdditiveExpr) Line() int   { return n.LineNo }
func (n *TermExpr) Line() int       { return n.LineNo }
func (n *CallExpr) Line() int       { return n.LineNo }
func (n *VarExpr) Line() int        { return n.LineNo }
func (n *NumberExpr) Line() int     { return n.LineNo }

func (*VarDecl) declNode() {}
func (*FunDecl) declNode() {}

func (*CompoundStmt) stmtNode() {}
func (*ExprStmt) stmtNode()     {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode()   {}

func (*AssignExpr) exprNode()     {}
func (*RelationalExpr) exprNode() {}
func (*AdditiveExpr) exprNode()   {}
func (*TermExpr) exprNode()       {}
func (*CallExpr) exprNode()       {}
func (*VarExpr) exprNode()        {}
func (*NumberExpr) exprNode()     {}
