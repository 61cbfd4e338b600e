// Package link locates Markdown inline links and rewrites their
// targets, and computes relative paths between documents.
package link

import (
	"regexp"
	"strings"
)

var inlineLinkRe = regexp.MustCompile(`\[([^\]]*)\]\(([^()]*)\)`)

// Ref is one inline link occurrence on a line.
type Ref struct {
	Text     string // the [text] part
	Target   string // the (target) part, verbatim
	Path     string // target before the first unescaped '#'
	Fragment string // target after it, without the '#'
	External bool   // http:// or https:// targets, never rewritten
}

// Refs extracts every inline link on the line, left to right,
// non-overlapping.
func Refs(line string) []Ref {
	var out []Ref
	for _, m := range inlineLinkRe.FindAllStringSubmatchIndex(line, -1) {
		out = append(out, refAt(line, m))
	}
	return out
}

// Rewrite replaces link targets using fn. fn returns the new target
// and true, or false to leave that link alone. External links are
// skipped outright. Replacement is by exact match span, so identical
// text elsewhere on the line is never corrupted.
func Rewrite(line string, fn func(Ref) (string, bool)) string {
	matches := inlineLinkRe.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return line
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		ref := refAt(line, m)
		if ref.External {
			continue
		}
		target, ok := fn(ref)
		if !ok || target == ref.Target {
			continue
		}
		b.WriteString(line[last:m[4]])
		b.WriteString(target)
		last = m[5]
	}
	if last == 0 {
		return line
	}
	b.WriteString(line[last:])
	return b.String()
}

// RewriteFragments points fragment-only links at the file that now
// holds the heading, per the slug-to-file map. Links whose slug
// resolves to currentFile itself stay fragment-only; unknown slugs are
// left untouched.
func RewriteFragments(line, currentFile string, files map[string]string) string {
	return Rewrite(line, func(r Ref) (string, bool) {
		if r.Path != "" || r.Fragment == "" {
			return "", false
		}
		dest, ok := files[r.Fragment]
		if !ok {
			return "", false
		}
		rel := Traverse(currentFile, dest)
		if rel == "" {
			return "", false
		}
		return rel + "#" + r.Fragment, true
	})
}

// RewriteSlugs migrates fragment links whose slug was renamed, e.g.
// after heading renumbering. The path part of a cross-file fragment
// link is preserved.
func RewriteSlugs(line string, slugs map[string]string) string {
	return Rewrite(line, func(r Ref) (string, bool) {
		if r.Fragment == "" {
			return "", false
		}
		next, ok := slugs[r.Fragment]
		if !ok || next == r.Fragment {
			return "", false
		}
		return r.Path + "#" + next, true
	})
}

// RewritePaths recomputes the path part of every non-fragment link so
// it reaches its target from currentFile. resolve maps the written
// path to the target's canonical location; returning "" leaves the
// link unmodified.
func RewritePaths(line, currentFile string, resolve func(path string) string) string {
	return Rewrite(line, func(r Ref) (string, bool) {
		if r.Path == "" {
			return "", false
		}
		dest := resolve(r.Path)
		if dest == "" {
			return "", false
		}
		rel := Traverse(currentFile, dest)
		if rel == "" || rel == r.Path {
			return "", false
		}
		if r.Fragment != "" {
			return rel + "#" + r.Fragment, true
		}
		return rel, true
	})
}

func refAt(line string, m []int) Ref {
	r := Ref{
		Text:   line[m[2]:m[3]],
		Target: line[m[4]:m[5]],
	}
	r.External = strings.HasPrefix(r.Target, "http://") || strings.HasPrefix(r.Target, "https://")
	if i := unescapedHash(r.Target); i >= 0 {
		r.Path, r.Fragment = r.Target[:i], r.Target[i+1:]
	} else {
		r.Path = r.Target
	}
	return r
}

// unescapedHash returns the index of the first '#' not preceded by a
// backslash, or -1.
func unescapedHash(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '#':
			return i
		}
	}
	return -1
}
