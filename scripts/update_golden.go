// update_golden rewrites the tree, diagnostics and tokens fences of the
// Markdown suites to match the current parser output.
//
// Usage: go run ./scripts [pattern]
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cminus-lang/cminus/internal/golden"
)

func main() {
	pattern := "test/*_test.md"
	if len(os.Args) > 1 {
		pattern = os.Args[1]
	}

	files, err := filepath.Glob(pattern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	total := 0
	for _, file := range files {
		n, err := updateFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to process %s: %v\n", file, err)
			continue
		}
		if n > 0 {
			fmt.Printf("%s: updated %d fences\n", file, n)
		}
		total += n
	}
	fmt.Printf("%d fences updated in %d files\n", total, len(files))
}

func updateFile(path string) (int, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	out, n, err := golden.Update(string(src))
	if err != nil || n == 0 {
		return 0, err
	}
	return n, os.WriteFile(path, []byte(out), 0644)
}
