package sexy

import (
	"os"
	"testing"

	"github.com/nalgeon/be"
)

func mustExtractFile(t *testing.T, path string) []TestCase {
	t.Helper()
	content, err := os.ReadFile(path)
	be.Err(t, err, nil)

	testCases, err := ExtractTestCases(string(content))
	be.Err(t, err, nil)
	return testCases
}
