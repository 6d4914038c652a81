package scanner

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/nalgeon/be"
)

func lexAll(t *testing.T, src string, opts ...Option) []Token {
	t.Helper()
	tokens, err := All(NewString(src, opts...))
	be.Err(t, err, nil)
	return tokens
}

func types(tokens []Token) []TokenType {
	var out []TokenType
	for _, tok := range tokens {
		out = append(out, tok.Type)
	}
	return out
}

func TestSingleTokens(t *testing.T) {
	tests := []struct {
		input  string
		typ    TokenType
		lexeme string
	}{
		{"+", PLUS, "+"},
		{"-", MINUS, "-"},
		{"*", TIMES, "*"},
		{"/", OVER, "/"},
		{"<", LT, "<"},
		{">", GT, ">"},
		{"<=", LTE, "<="},
		{">=", GTE, ">="},
		{"==", EQ, "=="},
		{"!=", NEQ, "!="},
		{"=", ASSIGN, "="},
		{";", SEMI, ";"},
		{",", COMMA, ","},
		{"(", LPAREN, "("},
		{")", RPAREN, ")"},
		{"[", LBRACK, "["},
		{"]", RBRACK, "]"},
		{"{", LBRACE, "{"},
		{"}", RBRACE, "}"},
		{"12345", NUM, "12345"},
		{"foobar", ID, "foobar"},
		{"x1y2", ID, "x1y2"},
	}

	for _, tt := range tests {
		tok := NewString(tt.input).Next()
		be.Equal(t, tok.Type, tt.typ)
		be.Equal(t, tok.Lexeme, tt.lexeme)
		be.Equal(t, tok.Line, 1)
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
	}{
		{"else", ELSE},
		{"if", IF},
		{"int", INT},
		{"return", RETURN},
		{"void", VOID},
		{"while", WHILE},
		// Maximal munch happens before the keyword lookup.
		{"iffy", ID},
		{"int2", ID},
		{"While", ID},
	}

	for _, tt := range tests {
		tok := NewString(tt.input).Next()
		be.Equal(t, tok.Type, tt.typ)
		be.Equal(t, tok.Lexeme, tt.input)
	}
}

func TestTwoCharOperatorPushback(t *testing.T) {
	tokens := lexAll(t, "a<b>=c==d=e!=f")
	be.Equal(t, types(tokens), []TokenType{
		ID, LT, ID, GTE, ID, EQ, ID, ASSIGN, ID, NEQ, ID, ENDFILE,
	})
	be.Equal(t, tokens[1].Lexeme, "<")
	be.Equal(t, tokens[2].Lexeme, "b")
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		input  string
		types  []TokenType
		lexeme string // lexeme of the ERROR token
	}{
		{"@", []TokenType{ERROR, ENDFILE}, "@"},
		{"#", []TokenType{ERROR, ENDFILE}, "#"},
		{"!", []TokenType{ERROR, ENDFILE}, "!"},
		{"a!b", []TokenType{ID, ERROR, ID, ENDFILE}, "!"},
		{"12abc", []TokenType{ERROR, ENDFILE}, "12abc"},
		{"1a2 ;", []TokenType{ERROR, SEMI, ENDFILE}, "1a2"},
		{"x /* never closed", []TokenType{ID, ERROR, ENDFILE}, "/*"},
		{"/* never closed *", []TokenType{ERROR, ENDFILE}, "/*"},
	}

	for _, tt := range tests {
		tokens := lexAll(t, tt.input)
		be.Equal(t, types(tokens), tt.types)
		for _, tok := range tokens {
			if tok.Type == ERROR {
				be.Equal(t, tok.Lexeme, tt.lexeme)
			}
		}
	}
}

func TestComments(t *testing.T) {
	tests := []struct {
		input string
		types []TokenType
	}{
		{"/* c */", []TokenType{ENDFILE}},
		{"a/**/b", []TokenType{ID, ID, ENDFILE}},
		{"a /* x * y / z */ b", []TokenType{ID, ID, ENDFILE}},
		{"a /* ends with **/ b", []TokenType{ID, ID, ENDFILE}},
		{"a / b", []TokenType{ID, OVER, ID, ENDFILE}},
	}

	for _, tt := range tests {
		be.Equal(t, types(lexAll(t, tt.input)), tt.types)
	}
}

func TestCommentAndWhitespaceTransparency(t *testing.T) {
	strip := func(tokens []Token) []Token {
		for i := range tokens {
			tokens[i].Line = 0
		}
		return tokens
	}

	a := strip(lexAll(t, "1/*c*/+2"))
	b := strip(lexAll(t, "1 + 2"))
	c := strip(lexAll(t, "1\n+\t/* multi\nline */2"))
	be.Equal(t, a, b)
	be.Equal(t, b, c)
}

func TestLineNumbers(t *testing.T) {
	src := "int x;\n\n  y\n/* a\nb */ z\r\n<\n"
	tokens := lexAll(t, src)

	var lines []int
	for _, tok := range tokens {
		lines = append(lines, tok.Line)
	}
	be.Equal(t, types(tokens), []TokenType{INT, ID, SEMI, ID, ID, LT, ENDFILE})
	be.Equal(t, lines, []int{1, 1, 1, 3, 5, 6, 7})
}

func TestUnterminatedCommentLine(t *testing.T) {
	tokens := lexAll(t, "a\n/* open\n\n")
	be.Equal(t, types(tokens), []TokenType{ID, ERROR, ENDFILE})
	be.Equal(t, tokens[1].Line, 2)
}

func TestEndFileIsSticky(t *testing.T) {
	s := NewString("x")
	be.Equal(t, s.Next().Type, ID)
	for range 3 {
		tok := s.Next()
		be.Equal(t, tok.Type, ENDFILE)
		be.Equal(t, tok.Lexeme, "")
	}
}

func TestEmptyInput(t *testing.T) {
	tok := NewString("").Next()
	be.Equal(t, tok.Type, ENDFILE)
	be.Equal(t, tok.Line, 1)
}

func TestMaxTokenLen(t *testing.T) {
	tokens := lexAll(t, "while whilex 1234567", WithMaxTokenLen(3))
	be.Equal(t, types(tokens), []TokenType{WHILE, ID, NUM, ENDFILE})
	be.Equal(t, tokens[0].Lexeme, "whi")
	be.Equal(t, tokens[1].Lexeme, "whi")
	be.Equal(t, tokens[2].Lexeme, "123")
}

func TestNonASCIIIsError(t *testing.T) {
	tokens := lexAll(t, "a é b")
	be.Equal(t, types(tokens), []TokenType{ID, ERROR, ID, ENDFILE})
	be.Equal(t, tokens[1].Lexeme, "é")
}

func TestReadErrorIsFatal(t *testing.T) {
	errBoom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("int x"), iotest.ErrReader(errBoom))
	s := New(r)

	tokens, err := All(s)
	be.Err(t, err, errBoom)
	be.Equal(t, tokens[len(tokens)-1].Type, ENDFILE)
}

func TestOpenAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.cm")
	be.Err(t, os.WriteFile(path, []byte("int x;\n"), 0o644), nil)

	s, err := Open(path)
	be.Err(t, err, nil)
	be.Equal(t, s.Next().Type, INT)
	be.Err(t, s.Close(), nil)
	be.Err(t, s.Err(), nil)
	be.Equal(t, s.Next().Type, ENDFILE)

	_, err = Open(filepath.Join(t.TempDir(), "missing.cm"))
	be.Err(t, err, os.ErrNotExist)
}

func TestFormatRow(t *testing.T) {
	be.Equal(t, FormatRow(Token{Type: INT, Lexeme: "int", Line: 1}), "1\tINT     \t\tint")
	be.Equal(t, FormatRow(Token{Type: ENDFILE, Line: 12}), "12\tENDFILE \t\t")
}

func TestWriteListing(t *testing.T) {
	var out strings.Builder
	err := WriteListing(&out, "", NewString("int x;\n"))
	be.Err(t, err, nil)

	want := "Line\tType\t\tLexeme\n" +
		"1\tINT     \t\tint\n" +
		"1\tID      \t\tx\n" +
		"1\tSEMI    \t\t;\n" +
		"2\tENDFILE \t\t\n" +
		"\n" +
		"Scanning completed successfully.\n"
	be.Equal(t, out.String(), want)
}

func TestWriteListingWithTitle(t *testing.T) {
	var out strings.Builder
	err := WriteListing(&out, "prog.cm", NewString(""))
	be.Err(t, err, nil)
	be.True(t, strings.HasPrefix(out.String(), "TOKEN LISTING FOR FILE: prog.cm\nLine\tType\t\tLexeme\n----"))
}

func TestWriteListingReadError(t *testing.T) {
	errBoom := errors.New("boom")
	var out strings.Builder
	err := WriteListing(&out, "", New(iotest.ErrReader(errBoom)))
	be.Err(t, err, errBoom)
}

func TestLookupIdent(t *testing.T) {
	be.Equal(t, LookupIdent("return"), RETURN)
	be.Equal(t, LookupIdent("main"), ID)
	be.True(t, VOID.IsKeyword())
	be.True(t, !ID.IsKeyword())
}
