// Package parser builds a C- syntax tree from a token stream.
//
// The parser is predictive: it looks at exactly one token to choose a
// production and never backtracks. Syntax errors are recorded as
// diagnostics and parsing continues, so a tree is always produced for any
// input. Every error path either consumes a token or returns to a caller
// that will, which bounds the work by the number of tokens.
package parser

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/cminus-lang/cminus/ast"
	"github.com/cminus-lang/cminus/scanner"
)

var relOps = map[scanner.TokenType]ast.RelOp{
	scanner.LT:  ast.OpLT,
	scanner.LTE: ast.OpLTE,
	scanner.GT:  ast.OpGT,
	scanner.GTE: ast.OpGTE,
	scanner.EQ:  ast.OpEQ,
	scanner.NEQ: ast.OpNEQ,
}

var addOps = map[scanner.TokenType]ast.AddOp{
	scanner.PLUS:  ast.OpPlus,
	scanner.MINUS: ast.OpMinus,
}

var mulOps = map[scanner.TokenType]ast.MulOp{
	scanner.TIMES: ast.OpTimes,
	scanner.OVER:  ast.OpDivide,
}

// Parser is a recursive-descent parser over one Scanner. A Parser is used
// for a single parse.
type Parser struct {
	s     *scanner.Scanner
	tok   scanner.Token // lookahead
	diags Diagnostics
	log   *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger that receives a debug record per diagnostic.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// New creates a parser reading tokens from s and primes the lookahead.
func New(s *scanner.Scanner, opts ...Option) *Parser {
	p := &Parser{
		s:   s,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.advance()
	return p
}

// Result is the outcome of parsing a whole program.
type Result struct {
	Program     *ast.Program
	Diagnostics Diagnostics
}

// Parse parses a complete program from s. The error is non-nil only when
// the scanner's source failed; syntax errors are in Result.Diagnostics.
func Parse(s *scanner.Scanner, opts ...Option) (*Result, error) {
	p := New(s, opts...)
	prog, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}
	return &Result{Program: prog, Diagnostics: p.Diagnostics()}, nil
}

// ParseString parses a complete program held in memory.
func ParseString(src string, opts ...Option) *Result {
	// Reading from a string cannot fail.
	res, _ := Parse(scanner.NewString(src), opts...)
	return res
}

// ParseProgram parses declarations until end of input.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := p.program()
	if err := p.s.Err(); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	p.log.Debug("parsed program",
		"declarations", len(prog.Declarations),
		"diagnostics", len(p.diags))
	return prog, nil
}

// ParseExpression parses a single expression that must span the whole
// input.
func (p *Parser) ParseExpression() (ast.Expr, error) {
	x := p.expression()
	if p.tok.Type != scanner.ENDFILE {
		p.errorf("expected %s, found %s", scanner.ENDFILE, p.tok.Type)
	}
	if err := p.s.Err(); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return x, nil
}

// Diagnostics returns the diagnostics recorded so far, in discovery order.
func (p *Parser) Diagnostics() Diagnostics {
	return append(Diagnostics(nil), p.diags...)
}

func (p *Parser) advance() {
	p.tok = p.s.Next()
}

func (p *Parser) at(types ...scanner.TokenType) bool {
	for _, typ := range types {
		if p.tok.Type == typ {
			return true
		}
	}
	return false
}

// expect consumes the lookahead if it has type typ. Otherwise it records a
// diagnostic and leaves the mismatched token in place.
func (p *Parser) expect(typ scanner.TokenType) bool {
	if p.tok.Type == typ {
		p.advance()
		return true
	}
	p.errorf("expected %s, found %s", typ, p.tok.Type)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	d := Diagnostic{Line: p.tok.Line, Message: fmt.Sprintf(format, args...)}
	p.diags = append(p.diags, d)
	p.log.Debug("syntax error", "line", d.Line, "message", d.Message)
}

// skipUntil discards tokens until the lookahead is one of stops or ENDFILE.
func (p *Parser) skipUntil(stops ...scanner.TokenType) {
	for !p.at(stops...) && p.tok.Type != scanner.ENDFILE {
		p.advance()
	}
}

// syncDeclaration skips the rest of a malformed declaration: through the
// next ';', or up to the start of something that can follow a declaration.
func (p *Parser) syncDeclaration() {
	p.skipUntil(scanner.SEMI, scanner.INT, scanner.VOID, scanner.LBRACE, scanner.RBRACE)
	if p.tok.Type == scanner.SEMI {
		p.advance()
	}
}

// program → declaration+
func (p *Parser) program() *ast.Program {
	prog := &ast.Program{LineNo: p.tok.Line}
	if p.tok.Type == scanner.ENDFILE {
		p.errorf("expected declaration, found %s", p.tok.Type)
		return prog
	}

	for p.tok.Type != scanner.ENDFILE {
		if !p.at(scanner.INT, scanner.VOID) {
			p.errorf("invalid declaration: unexpected %s", p.tok.Type)
			p.advance()
			p.skipUntil(scanner.INT, scanner.VOID)
			continue
		}
		if decl := p.declaration(); decl != nil {
			prog.Declarations = append(prog.Declarations, decl)
		}
	}
	return prog
}

// declaration → ("int" | "void") ID declTail
func (p *Parser) declaration() ast.Decl {
	line := p.tok.Line
	typ := p.typeSpecifier()
	name, ok := p.identifier()
	if !ok {
		p.syncDeclaration()
		return nil
	}

	if p.tok.Type == scanner.LPAREN {
		return p.funDeclaration(line, name, typ)
	}
	return p.varDeclaration(line, name, typ)
}

// typeSpecifier consumes the INT or VOID lookahead.
func (p *Parser) typeSpecifier() ast.TypeSpecifier {
	typ := ast.TypeInt
	if p.tok.Type == scanner.VOID {
		typ = ast.TypeVoid
	}
	p.advance()
	return typ
}

func (p *Parser) identifier() (string, bool) {
	name := p.tok.Lexeme
	if !p.expect(scanner.ID) {
		return "", false
	}
	return name, true
}

// declTail → ";" | "[" NUM "]" ";"
//
// A bad array size still yields a scalar declaration so the tree stays
// usable.
func (p *Parser) varDeclaration(line int, name string, typ ast.TypeSpecifier) *ast.VarDecl {
	decl := ast.NewVarDecl(line, name, typ)

	if p.tok.Type == scanner.LBRACK {
		p.advance()
		if p.tok.Type == scanner.NUM {
			size, ok := p.number()
			if p.expect(scanner.RBRACK) && ok {
				decl = ast.NewArrayDecl(line, name, typ, size)
			}
		} else {
			p.errorf("expected %s, found %s", scanner.NUM, p.tok.Type)
			if p.tok.Type == scanner.RBRACK {
				p.advance()
			}
		}
	}

	if !p.expect(scanner.SEMI) {
		p.syncDeclaration()
	}
	return decl
}

// declTail → "(" params ")" compoundStmt
func (p *Parser) funDeclaration(line int, name string, typ ast.TypeSpecifier) *ast.FunDecl {
	fun := &ast.FunDecl{LineNo: line, Name: name, ReturnType: typ}

	p.advance() // '('
	fun.Params = p.params()
	if !p.expect(scanner.RPAREN) {
		p.skipUntil(scanner.RPAREN, scanner.LBRACE, scanner.SEMI)
		if p.tok.Type == scanner.RPAREN {
			p.advance()
		}
	}

	fun.Body = p.compoundStmt()
	return fun
}

// params → "void" | param ("," param)*
//
// A void type followed by a name is kept as a parameter; rejecting it is
// left to semantic analysis.
func (p *Parser) params() []*ast.Param {
	var params []*ast.Param

	if p.tok.Type == scanner.VOID {
		line := p.tok.Line
		p.advance()
		if p.tok.Type != scanner.ID {
			return nil
		}
		params = append(params, p.paramTail(line, ast.TypeVoid))
		if p.tok.Type != scanner.COMMA {
			return params
		}
		p.advance()
	}

	for {
		param := p.param()
		if param == nil {
			break
		}
		params = append(params, param)
		if p.tok.Type != scanner.COMMA {
			break
		}
		p.advance()
	}
	return params
}

// param → "int" ID ["[" "]"]
func (p *Parser) param() *ast.Param {
	line := p.tok.Line
	if !p.at(scanner.INT, scanner.VOID) {
		p.errorf("expected %s, found %s", scanner.INT, p.tok.Type)
		return nil
	}
	return p.paramTail(line, p.typeSpecifier())
}

func (p *Parser) paramTail(line int, typ ast.TypeSpecifier) *ast.Param {
	name, ok := p.identifier()
	if !ok {
		return nil
	}

	param := &ast.Param{LineNo: line, Name: name, Type: typ}
	if p.tok.Type == scanner.LBRACK {
		p.advance()
		p.expect(scanner.RBRACK)
		param.IsArray = true
	}
	return param
}

// compoundStmt → "{" varDecl* statement* "}"
//
// Without the opening brace nothing is consumed and the block is empty.
func (p *Parser) compoundStmt() *ast.CompoundStmt {
	block := &ast.CompoundStmt{LineNo: p.tok.Line}
	if !p.expect(scanner.LBRACE) {
		return block
	}

	for p.at(scanner.INT, scanner.VOID) {
		if local := p.localDeclaration(); local != nil {
			block.Locals = append(block.Locals, local)
		}
	}

	for !p.at(scanner.RBRACE, scanner.ENDFILE) {
		if stmt := p.statement(); stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}

	p.expect(scanner.RBRACE)
	return block
}

func (p *Parser) localDeclaration() *ast.VarDecl {
	line := p.tok.Line
	typ := p.typeSpecifier()
	name, ok := p.identifier()
	if !ok {
		p.syncDeclaration()
		return nil
	}
	return p.varDeclaration(line, name, typ)
}

// statement → exprStmt | compoundStmt | ifStmt | whileStmt | returnStmt
//
// A token that starts no statement is reported and dropped; the result is
// nil in that case.
func (p *Parser) statement() ast.Stmt {
	switch p.tok.Type {
	case scanner.SEMI, scanner.ID, scanner.LPAREN, scanner.NUM:
		return p.expressionStmt()
	case scanner.LBRACE:
		return p.compoundStmt()
	case scanner.IF:
		return p.ifStmt()
	case scanner.WHILE:
		return p.whileStmt()
	case scanner.RETURN:
		return p.returnStmt()
	default:
		p.errorf("invalid statement: unexpected %s", p.tok.Type)
		p.advance()
		return nil
	}
}

// exprStmt → [expression] ";"
func (p *Parser) expressionStmt() *ast.ExprStmt {
	line := p.tok.Line
	if p.tok.Type == scanner.SEMI {
		p.advance()
		return &ast.ExprStmt{LineNo: line}
	}

	x := p.expression()
	p.endStatement()
	return &ast.ExprStmt{LineNo: line, X: x}
}

// endStatement consumes the ';' that ends a statement. When it is missing
// the rest of the statement is skipped.
func (p *Parser) endStatement() {
	if p.expect(scanner.SEMI) {
		return
	}
	p.skipUntil(scanner.SEMI, scanner.LBRACE, scanner.RBRACE,
		scanner.IF, scanner.WHILE, scanner.RETURN)
	if p.tok.Type == scanner.SEMI {
		p.advance()
	}
}

// ifStmt → "if" "(" expression ")" statement ["else" statement]
//
// An else always attaches to the nearest if, because the innermost call
// sees it first.
func (p *Parser) ifStmt() *ast.IfStmt {
	stmt := &ast.IfStmt{LineNo: p.tok.Line}
	p.advance()

	p.expect(scanner.LPAREN)
	stmt.Cond = p.expression()
	p.expect(scanner.RPAREN)

	stmt.Then = p.statement()
	if p.tok.Type == scanner.ELSE {
		p.advance()
		stmt.Else = p.statement()
	}
	return stmt
}

// whileStmt → "while" "(" expression ")" statement
func (p *Parser) whileStmt() *ast.WhileStmt {
	stmt := &ast.WhileStmt{LineNo: p.tok.Line}
	p.advance()

	p.expect(scanner.LPAREN)
	stmt.Cond = p.expression()
	p.expect(scanner.RPAREN)

	stmt.Body = p.statement()
	return stmt
}

// returnStmt → "return" [expression] ";"
func (p *Parser) returnStmt() *ast.ReturnStmt {
	stmt := &ast.ReturnStmt{LineNo: p.tok.Line}
	p.advance()

	if p.tok.Type == scanner.SEMI {
		p.advance()
		return stmt
	}

	stmt.X = p.expression()
	p.endStatement()
	return stmt
}

// expression → var "=" expression | simpleExpr
//
// var, call and the start of a simpleExpr all begin with ID. The ID is
// consumed once and the following token picks the alternative; a var or
// call that is not assigned to becomes the first operand of simpleExpr.
func (p *Parser) expression() ast.Expr {
	if p.tok.Type != scanner.ID {
		return p.simpleExpression(nil)
	}

	line := p.tok.Line
	name := p.tok.Lexeme
	p.advance()

	if p.tok.Type == scanner.LPAREN {
		return p.simpleExpression(p.call(line, name))
	}

	v := p.variable(line, name)
	if p.tok.Type == scanner.ASSIGN {
		p.advance()
		return &ast.AssignExpr{LineNo: line, Target: v, Value: p.expression()}
	}
	return p.simpleExpression(v)
}

// simpleExpr → additive [relop additive]
//
// If first is non-nil it is the already parsed leading factor.
func (p *Parser) simpleExpression(first ast.Expr) ast.Expr {
	line := p.startLine(first)
	left := p.additiveExpression(first)

	op, ok := relOps[p.tok.Type]
	if !ok {
		return left
	}
	p.advance()
	right := p.additiveExpression(nil)
	return &ast.RelationalExpr{LineNo: line, Left: left, Op: op, Right: right}
}

// additive → term (addop term)*
func (p *Parser) additiveExpression(first ast.Expr) ast.Expr {
	line := p.startLine(first)
	left := p.term(first)

	for {
		op, ok := addOps[p.tok.Type]
		if !ok {
			return left
		}
		p.advance()
		right := p.term(nil)
		left = &ast.AdditiveExpr{LineNo: line, Left: left, Op: op, Right: right}
	}
}

// term → factor (mulop factor)*
func (p *Parser) term(first ast.Expr) ast.Expr {
	line := p.startLine(first)
	left := first
	if left == nil {
		left = p.factor()
	}

	for {
		op, ok := mulOps[p.tok.Type]
		if !ok {
			return left
		}
		p.advance()
		right := p.factor()
		left = &ast.TermExpr{LineNo: line, Left: left, Op: op, Right: right}
	}
}

func (p *Parser) startLine(first ast.Expr) int {
	if first != nil {
		return first.Line()
	}
	return p.tok.Line
}

// factor → "(" expression ")" | ID (arrayIndex | callArgs)? | NUM
//
// Any other token is reported, consumed, and replaced by the number 0.
func (p *Parser) factor() ast.Expr {
	line := p.tok.Line

	switch p.tok.Type {
	case scanner.LPAREN:
		p.advance()
		x := p.expression()
		p.expect(scanner.RPAREN)
		return x

	case scanner.ID:
		name := p.tok.Lexeme
		p.advance()
		if p.tok.Type == scanner.LPAREN {
			return p.call(line, name)
		}
		return p.variable(line, name)

	case scanner.NUM:
		value, _ := p.number()
		return &ast.NumberExpr{LineNo: line, Value: value}

	default:
		p.errorf("invalid factor: unexpected %s", p.tok.Type)
		p.advance()
		return &ast.NumberExpr{LineNo: line, Value: 0}
	}
}

// variable finishes a var whose identifier has been consumed.
func (p *Parser) variable(line int, name string) *ast.VarExpr {
	v := &ast.VarExpr{LineNo: line, Name: name}
	if p.tok.Type == scanner.LBRACK {
		p.advance()
		v.Index = p.expression()
		p.expect(scanner.RBRACK)
	}
	return v
}

// call finishes a call whose identifier has been consumed; the lookahead
// is '('.
func (p *Parser) call(line int, name string) *ast.CallExpr {
	call := &ast.CallExpr{LineNo: line, Name: name}
	p.advance() // '('

	if p.tok.Type != scanner.RPAREN {
		for {
			call.Args = append(call.Args, p.expression())
			if p.tok.Type != scanner.COMMA {
				break
			}
			p.advance()
		}
	}

	p.expect(scanner.RPAREN)
	return call
}

// number consumes the NUM lookahead. A literal too large for int is
// reported and read as 0.
func (p *Parser) number() (int, bool) {
	value, err := strconv.Atoi(p.tok.Lexeme)
	if err != nil {
		p.errorf("number out of range: %s", p.tok.Lexeme)
		value = 0
	}
	p.advance()
	return value, err == nil
}
