package scanner

import "fmt"

// TokenType is the type of token (keyword, operator, identifier, etc.).
type TokenType string

// Definition of token types
const (
	// Keywords
	ELSE   TokenType = "ELSE"
	IF     TokenType = "IF"
	INT    TokenType = "INT"
	RETURN TokenType = "RETURN"
	VOID   TokenType = "VOID"
	WHILE  TokenType = "WHILE"

	// Operators
	PLUS   TokenType = "PLUS"   // +
	MINUS  TokenType = "MINUS"  // -
	TIMES  TokenType = "TIMES"  // *
	OVER   TokenType = "OVER"   // /
	LT     TokenType = "LT"     // <
	GT     TokenType = "GT"     // >
	LTE    TokenType = "LTE"    // <=
	GTE    TokenType = "GTE"    // >=
	EQ     TokenType = "EQ"     // ==
	NEQ    TokenType = "NEQ"    // !=
	ASSIGN TokenType = "ASSIGN" // =

	// Delimiters
	SEMI   TokenType = "SEMI"   // ;
	COMMA  TokenType = "COMMA"  // ,
	LPAREN TokenType = "LPAREN" // (
	RPAREN TokenType = "RPAREN" // )
	LBRACK TokenType = "LBRACK" // [
	RBRACK TokenType = "RBRACK" // ]
	LBRACE TokenType = "LBRACE" // {
	RBRACE TokenType = "RBRACE" // }

	// Identifiers + literals
	ID  TokenType = "ID"
	NUM TokenType = "NUM"

	// Special tokens
	ERROR   TokenType = "ERROR"
	ENDFILE TokenType = "ENDFILE"
)

// keywords maps reserved words to their token types. It is never written
// after package initialization.
var keywords = map[string]TokenType{
	"else":   ELSE,
	"if":     IF,
	"int":    INT,
	"return": RETURN,
	"void":   VOID,
	"while":  WHILE,
}

// LookupIdent classifies a complete identifier run as a keyword or ID.
func LookupIdent(text string) TokenType {
	if typ, ok := keywords[text]; ok {
		return typ
	}
	return ID
}

// IsKeyword reports whether typ is one of the reserved words.
func (typ TokenType) IsKeyword() bool {
	switch typ {
	case ELSE, IF, INT, RETURN, VOID, WHILE:
		return true
	}
	return false
}

// Token is one lexical unit. Tokens are values and never change after the
// scanner hands them out.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int // 1-based line of the token's first character
}

func (t Token) String() string {
	return fmt.Sprintf("Line %d: Type: %s, Value: %q", t.Line, t.Type, t.Lexeme)
}
