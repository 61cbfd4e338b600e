// Package diffutil produces unified diffs for dry-run output, using
// github.com/pmezard/go-difflib (---/+++ headers, @@ hunks).
package diffutil

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Unified renders a classic unified diff between two versions of a
// file. Returns "" when the versions are identical. context is the
// number of context lines per hunk; values <= 0 default to 3.
func Unified(name string, a, b []byte, context int) (string, error) {
	if context <= 0 {
		context = 3
	}
	u := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  context,
	}
	return difflib.GetUnifiedDiffString(u)
}
