// Package anchor derives URL-safe anchor slugs from heading text and
// keeps them unique within one document or assembly pass.
package anchor

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	numberingRe = regexp.MustCompile(`^(\d+\.)+\s*`)
	dropRe      = regexp.MustCompile(`[^a-zA-Z0-9 _-]+`)
	spacesRe    = regexp.MustCompile(` +`)
)

// Slugify converts heading text to its base anchor slug: heading
// markers and "1.2.3."-style numbering tokens are stripped, anything
// outside [a-z0-9 _-] is removed, spaces collapse to single hyphens
// and the result is ASCII-lowercased. Non-ASCII characters are
// dropped, not transliterated.
func Slugify(heading string) string {
	s := strings.TrimSpace(heading)
	s = strings.TrimLeft(s, "#")
	s = strings.TrimSpace(s)
	s = numberingRe.ReplaceAllString(s, "")
	s = dropRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = spacesRe.ReplaceAllString(s, "-")
	return strings.ToLower(s)
}

// Table tracks slugs already handed out, so repeated headings get
// distinct anchors. The zero value is not usable; call NewTable.
type Table struct {
	seen map[string]int
}

// NewTable returns an empty slug table.
func NewTable() *Table {
	return &Table{seen: make(map[string]int)}
}

// Unique returns the disambiguated slug for heading and records it.
// The first occurrence of a base slug is returned unchanged; each
// collision appends "-1", "-2", and so on. Deterministic and
// order-dependent: the same heading sequence always yields the same
// slugs.
func (t *Table) Unique(heading string) string {
	slug := Slugify(heading)
	n, ok := t.seen[slug]
	if !ok {
		t.seen[slug] = 0
		return slug
	}
	n++
	t.seen[slug] = n
	return fmt.Sprintf("%s-%d", slug, n)
}
