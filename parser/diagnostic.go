package parser

import (
	"fmt"
	"strings"
)

// Diagnostic is a non-fatal syntax problem found while parsing.
type Diagnostic struct {
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("Line %d: %s", d.Line, d.Message)
}

func (d Diagnostic) Error() string {
	return d.String()
}

// Diagnostics holds diagnostics in the order they were discovered.
type Diagnostics []Diagnostic

// HasErrors reports whether any diagnostic was recorded.
func (ds Diagnostics) HasErrors() bool {
	return len(ds) > 0
}

// String returns one diagnostic per line.
func (ds Diagnostics) String() string {
	var sb strings.Builder
	for i, d := range ds {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(d.String())
	}
	return sb.String()
}
