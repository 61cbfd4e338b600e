package toc

import (
	"regexp"
	"strings"

	"github.com/gubarz/mdgen/internal/anchor"
	"github.com/gubarz/mdgen/internal/mdscan"
)

var numberingTokenRe = regexp.MustCompile(`^(\d+\.)+\s*`)

// stripNumbering removes a leading "1.2.3."-style token from heading
// text.
func stripNumbering(text string) string {
	return numberingTokenRe.ReplaceAllString(strings.TrimSpace(text), "")
}

// Renumber rewrites every heading line with a fresh hierarchical
// number, replacing any numbering token already present. It returns
// the rebuilt buffer and a slug migration map covering every
// pre-renumbering slug and its numbering-stripped form, for fixing
// existing in-document links afterwards.
func Renumber(lines []string, opts Options) ([]string, map[string]string) {
	_, heads := mdscan.Categorize(lines)

	out := make([]string, len(lines))
	copy(out, lines)

	numberer := NewNumberer(opts)
	oldTable := anchor.NewTable()
	newTable := anchor.NewTable()
	remap := make(map[string]string, 2*len(heads))

	for _, h := range heads {
		stripped := stripNumbering(h.Text)
		num := numberer.Number(h)
		newText := stripped
		if num != "" {
			newText = num + " " + stripped
		}

		oldSlug := oldTable.Unique(h.Text)
		newSlug := newTable.Unique(newText)
		remap[oldSlug] = newSlug
		if base := anchor.Slugify(stripped); base != oldSlug {
			if _, taken := remap[base]; !taken {
				remap[base] = newSlug
			}
		}

		out[h.Index] = renderHeading(lines[h.Index], h.Level, newText)
	}
	return out, remap
}

// renderHeading rebuilds a heading line around new text, keeping the
// ATX hashmark prefix when present. Setext heading text lines are
// replaced wholesale; their underline is untouched.
func renderHeading(line string, level int, text string) string {
	if strings.HasPrefix(strings.TrimLeft(line, " "), "#") {
		return strings.Repeat("#", level) + " " + text
	}
	return text
}

// MigrateLinks applies rewrite to every hyperlink-bearing line. Lines
// inside code blocks are never touched, since the categorizer never
// reports them as hyperlinks.
func MigrateLinks(lines []string, rewrite func(line string) string) []string {
	cats, _ := mdscan.Categorize(lines)
	out := make([]string, len(lines))
	for i, ln := range lines {
		if cats[i].Category == mdscan.Hyperlink {
			out[i] = rewrite(ln)
		} else {
			out[i] = ln
		}
	}
	return out
}
