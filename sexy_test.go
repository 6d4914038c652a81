package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cminus-lang/cminus/internal/golden"
	"github.com/cminus-lang/cminus/sexy"
	"github.com/nalgeon/be"
)

func TestSexyAllTests(t *testing.T) {
	testFiles, err := filepath.Glob("test/*_test.md")
	be.Err(t, err, nil)
	be.True(t, len(testFiles) > 0)

	for _, testFile := range testFiles {
		testName := strings.TrimSuffix(filepath.Base(testFile), ".md")

		t.Run(testName, func(t *testing.T) {
			content, err := os.ReadFile(testFile)
			be.Err(t, err, nil)

			testCases, err := sexy.ExtractTestCases(string(content))
			be.Err(t, err, nil)

			for _, tc := range testCases {
				t.Run(tc.Name, func(t *testing.T) {
					res, err := golden.Parse(tc)
					be.Err(t, err, nil)

					for i, assertion := range tc.Assertions {
						t.Run("assertion_"+string(rune('a'+i)), func(t *testing.T) {
							checkAssertion(t, tc, res, assertion)
						})
					}
				})
			}
		})
	}
}

func checkAssertion(t *testing.T, tc sexy.TestCase, res golden.Result, assertion sexy.Assertion) {
	got, err := golden.Render(tc, res, assertion.Type)
	be.Err(t, err, nil)

	if assertion.Type != sexy.AssertionTypeAST {
		be.Equal(t, got, assertion.Content)
		return
	}

	actual, err := sexy.Parse(got)
	be.Err(t, err, nil)
	if err := sexy.Match(assertion.ParsedSexy, actual); err != nil {
		t.Errorf("line %d: %v\ngot: %s", assertion.Line, err, got)
	}
}
