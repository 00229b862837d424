package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertModuleLines checks that the generated module contains the given lines in
// order, each as a whole line. Other lines may appear in between.
func AssertModuleLines(t *testing.T, result *HarnessResult, lines ...string) {
	t.Helper()
	require.NoError(t, result.Err)

	have := strings.Split(result.Module, "\n")
	next := 0
	for _, want := range lines {
		found := false
		for next < len(have) {
			next++
			if have[next-1] == want {
				found = true
				break
			}
		}
		require.True(t, found, "line %q not found in order in module:\n%s", want, result.Module)
	}
}

// AssertLineCount checks how often a whole line occurs in the generated module.
func AssertLineCount(t *testing.T, result *HarnessResult, line string, count int) {
	t.Helper()
	n := 0
	for _, l := range strings.Split(result.Module, "\n") {
		if l == line {
			n++
		}
	}
	require.Equal(t, count, n, "occurrences of %q in module:\n%s", line, result.Module)
}
