package scanner

import (
	"bufio"
	"fmt"
	"io"
)

// WriteListing drains s and writes one row per token, ENDFILE included.
// When name is non-empty a title line and a rule frame the column header.
// A read error from the source aborts the listing and is returned.
func WriteListing(w io.Writer, name string, s *Scanner) error {
	bw := bufio.NewWriter(w)

	if name != "" {
		fmt.Fprintf(bw, "TOKEN LISTING FOR FILE: %s\n", name)
	}
	fmt.Fprintln(bw, "Line\tType\t\tLexeme")
	if name != "" {
		fmt.Fprintln(bw, "----------------------------------------")
	}

	for {
		tok := s.Next()
		if err := s.Err(); err != nil {
			return err
		}
		fmt.Fprintln(bw, FormatRow(tok))
		if tok.Type == ENDFILE {
			break
		}
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Scanning completed successfully.")
	return bw.Flush()
}

// FormatRow renders tok as one tab-separated listing row.
func FormatRow(tok Token) string {
	return fmt.Sprintf("%d\t%-8s\t\t%s", tok.Line, tok.Type, tok.Lexeme)
}
