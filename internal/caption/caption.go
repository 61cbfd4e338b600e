// Package caption numbers figure and table caption directives.
//
// A caption directive owns the generated lines that follow it, up to
// the next blank line; Apply replaces that region on every run, so the
// numbering stays consistent after documents are edited. The captioned
// material itself (the image's surroundings, the table) belongs after
// the terminating blank line.
package caption

import (
	"fmt"
	"strings"

	"github.com/gubarz/mdgen/internal/mdscan"
)

// Apply renumbers every figure and table directive in document order
// and returns the rebuilt buffer. Figures and tables count
// independently.
func Apply(lines []string) []string {
	cats, _ := mdscan.Categorize(lines)

	var out []string
	figures, tables := 0, 0
	for i := 0; i < len(lines); i++ {
		c := cats[i]
		switch {
		case c.Category == mdscan.Figure && !c.Closing:
			figures++
			out = append(out, lines[i])
			out = append(out, renderFigure(figures, c.Attrs)...)
			i = skipGenerated(lines, i)
		case c.Category == mdscan.Table && !c.Closing:
			tables++
			out = append(out, lines[i])
			out = append(out, renderTable(tables, c.Attrs))
			i = skipGenerated(lines, i)
		default:
			out = append(out, lines[i])
		}
	}
	return out
}

func renderFigure(n int, attrs map[string]string) []string {
	label := captionText("Figure", n, attrs["caption"])
	file := attrs["file"]
	if file == "" {
		return []string{"*" + label + "*"}
	}
	return []string{
		fmt.Sprintf("![%s](%s)", label, file),
		"*" + label + "*",
	}
}

func renderTable(n int, attrs map[string]string) string {
	return "*" + captionText("Table", n, attrs["caption"]) + "*"
}

func captionText(kind string, n int, caption string) string {
	if caption == "" {
		return fmt.Sprintf("%s %d", kind, n)
	}
	return fmt.Sprintf("%s %d: %s", kind, n, caption)
}

// skipGenerated returns the last index of the directive's generated
// region: every non-blank line after the directive, stopping before
// the terminating blank line.
func skipGenerated(lines []string, i int) int {
	j := i + 1
	for j < len(lines) && strings.TrimSpace(lines[j]) != "" {
		j++
	}
	return j - 1
}
