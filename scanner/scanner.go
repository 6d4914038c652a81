package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// ErrClosed is returned by Err after Close has released the source.
var ErrClosed = errors.New("scanner: source closed")

const eof rune = -1

// state is a state of the token-recognition automaton.
type state int

const (
	stateStart state = iota
	stateInLT
	stateInGT
	stateInEQ
	stateInNot
	stateInSlash
	stateInComment
	stateInCommentStar
	stateInNum
	stateInID
	stateDone
)

// Scanner turns C- source text into tokens, one per call to Next.
//
// Input is read a line at a time. At most one character can be pushed back;
// the slot is consumed by the next read.
type Scanner struct {
	r      *bufio.Reader
	closer io.Closer

	text string // current input line, including its '\n'
	pos  int    // byte offset of the next character in text
	line int    // 1 + number of '\n' consumed so far

	pushback    rune
	hasPushback bool

	err  error
	done bool // source exhausted or failed

	maxTokenLen int
	log         *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithMaxTokenLen truncates lexemes to n characters. Classification always
// uses the full text, so truncation never changes a token's type. Zero
// (the default) means unbounded.
func WithMaxTokenLen(n int) Option {
	return func(s *Scanner) {
		s.maxTokenLen = n
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a scanner reading from r. The caller keeps ownership of r.
func New(r io.Reader, opts ...Option) *Scanner {
	s := &Scanner{
		r:    bufio.NewReader(r),
		line: 1,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewString creates a scanner over an in-memory source.
func NewString(src string, opts ...Option) *Scanner {
	return New(strings.NewReader(src), opts...)
}

// Open creates a scanner that owns the named file. Close releases it.
func Open(path string, opts ...Option) (*Scanner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	s := New(f, opts...)
	s.closer = f
	return s, nil
}

// Close releases the underlying file if the scanner opened it. Further
// calls to Next return ENDFILE.
func (s *Scanner) Close() error {
	s.done = true
	s.hasPushback = false
	s.text, s.pos = "", 0
	if s.err == nil {
		s.err = ErrClosed
	}
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil
	return c.Close()
}

// Err returns the first read error encountered, if any. After an error the
// scanner behaves as if the input had ended.
func (s *Scanner) Err() error {
	if errors.Is(s.err, ErrClosed) {
		return nil
	}
	return s.err
}

// Line returns the current 1-based line number.
func (s *Scanner) Line() int {
	return s.line
}

// getNextChar returns the next character, or eof.
func (s *Scanner) getNextChar() rune {
	if s.hasPushback {
		s.hasPushback = false
		c := s.pushback
		if c == '\n' {
			s.line++
		}
		return c
	}
	if s.pos >= len(s.text) {
		if !s.readLine() {
			return eof
		}
	}
	c, size := utf8.DecodeRuneInString(s.text[s.pos:])
	s.pos += size
	if c == '\n' {
		s.line++
	}
	return c
}

// ungetNextChar pushes c back so the next getNextChar returns it again.
func (s *Scanner) ungetNextChar(c rune) {
	if s.hasPushback {
		panic("scanner: pushback slot already full")
	}
	s.pushback = c
	s.hasPushback = true
	if c == '\n' {
		s.line--
	}
}

func (s *Scanner) readLine() bool {
	if s.done {
		return false
	}
	text, err := s.r.ReadString('\n')
	if err != nil {
		s.done = true
		if !errors.Is(err, io.EOF) {
			s.err = fmt.Errorf("read source: %w", err)
			return false
		}
	}
	if text == "" {
		return false
	}
	s.text = text
	s.pos = 0
	return true
}

// Next scans and returns the next token. At end of input it returns an
// ENDFILE token, and keeps doing so on every later call.
func (s *Scanner) Next() Token {
	var lexeme strings.Builder
	st := stateStart
	typ := ERROR
	line := s.line
	malformed := false

	for st != stateDone {
		c := s.getNextChar()
		save := true

		switch st {
		case stateStart:
			line = s.line
			switch {
			case isDigit(c):
				st = stateInNum
			case isLetter(c):
				st = stateInID
			case isSpace(c):
				save = false
			case c == '<':
				st = stateInLT
			case c == '>':
				st = stateInGT
			case c == '=':
				st = stateInEQ
			case c == '!':
				st = stateInNot
			case c == '/':
				st = stateInSlash
			default:
				st = stateDone
				switch c {
				case eof:
					save = false
					typ = ENDFILE
				case '+':
					typ = PLUS
				case '-':
					typ = MINUS
				case '*':
					typ = TIMES
				case ';':
					typ = SEMI
				case ',':
					typ = COMMA
				case '(':
					typ = LPAREN
				case ')':
					typ = RPAREN
				case '[':
					typ = LBRACK
				case ']':
					typ = RBRACK
				case '{':
					typ = LBRACE
				case '}':
					typ = RBRACE
				default:
					typ = ERROR
				}
			}

		case stateInSlash:
			save = false
			if c == '*' {
				st = stateInComment
				lexeme.Reset()
			} else {
				s.ungetNextChar(c)
				st = stateDone
				typ = OVER
			}

		case stateInComment:
			save = false
			if c == eof {
				st = stateDone
				typ = ERROR
				lexeme.WriteString("/*")
			} else if c == '*' {
				st = stateInCommentStar
			}

		case stateInCommentStar:
			save = false
			switch c {
			case eof:
				st = stateDone
				typ = ERROR
				lexeme.WriteString("/*")
			case '/':
				st = stateStart
			case '*':
				// "**/" still closes the comment
			default:
				st = stateInComment
			}

		case stateInLT:
			st = stateDone
			typ = twoCharOp(s, c, LTE, LT, &save)

		case stateInGT:
			st = stateDone
			typ = twoCharOp(s, c, GTE, GT, &save)

		case stateInEQ:
			st = stateDone
			typ = twoCharOp(s, c, EQ, ASSIGN, &save)

		case stateInNot:
			st = stateDone
			typ = twoCharOp(s, c, NEQ, ERROR, &save)

		case stateInNum:
			switch {
			case isDigit(c):
			case isLetter(c):
				// 12abc is one malformed token, not NUM followed by ID.
				malformed = true
			default:
				s.ungetNextChar(c)
				save = false
				st = stateDone
				typ = NUM
				if malformed {
					typ = ERROR
				}
			}

		case stateInID:
			if !isLetter(c) && !isDigit(c) {
				s.ungetNextChar(c)
				save = false
				st = stateDone
				typ = ID
			}
		}

		if save {
			lexeme.WriteRune(c)
		}
	}

	text := lexeme.String()
	if typ == ID {
		typ = LookupIdent(text)
	}
	if s.maxTokenLen > 0 && utf8.RuneCountInString(text) > s.maxTokenLen {
		text = truncate(text, s.maxTokenLen)
	}
	tok := Token{Type: typ, Lexeme: text, Line: line}
	if typ == ERROR {
		s.log.Debug("lexical error", "line", tok.Line, "lexeme", tok.Lexeme)
	}
	return tok
}

// twoCharOp resolves an operator whose first character has been consumed:
// if c completes the two-character form it is kept, otherwise it is pushed
// back and the one-character form is returned.
func twoCharOp(s *Scanner, c rune, long, short TokenType, save *bool) TokenType {
	if c == '=' {
		return long
	}
	s.ungetNextChar(c)
	*save = false
	return short
}

func truncate(text string, n int) string {
	i := 0
	for pos := range text {
		if i == n {
			return text[:pos]
		}
		i++
	}
	return text
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// All scans the remaining input and returns every token up to and including
// ENDFILE. The returned error is the scanner's read error, if any.
func All(s *Scanner) ([]Token, error) {
	var tokens []Token
	for {
		tok := s.Next()
		tokens = append(tokens, tok)
		if tok.Type == ENDFILE {
			break
		}
	}
	return tokens, s.Err()
}
