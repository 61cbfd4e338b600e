// Package include expands include directives: file contents, shell
// command output, and verbatim fenced renditions of either. Expansion
// replaces any previously expanded content between the open and close
// markers, so running it again is a no-op unless the source changed.
package include

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gubarz/mdgen/internal/doc"
	"github.com/gubarz/mdgen/internal/mdscan"
	"github.com/gubarz/mdgen/internal/shell"
)

// DefaultMaxDepth bounds include-within-include recursion. Two files
// that include each other hit the bound instead of looping.
const DefaultMaxDepth = 10

// Expander rewrites include directives in a document.
type Expander struct {
	Runner   shell.Runner
	MaxDepth int // 0 means DefaultMaxDepth
}

func (e *Expander) maxDepth() int {
	if e.MaxDepth > 0 {
		return e.MaxDepth
	}
	return DefaultMaxDepth
}

// Expand processes every include directive in lines. docPath locates
// the document; file= and md-file= attributes resolve relative to its
// directory.
func (e *Expander) Expand(docPath string, lines []string) ([]string, error) {
	return e.expand(lines, filepath.Dir(docPath), 0)
}

func (e *Expander) expand(lines []string, dir string, depth int) ([]string, error) {
	if depth >= e.maxDepth() {
		return nil, fmt.Errorf("include nesting deeper than %d, aborting (circular include?)", e.maxDepth())
	}
	cats, _ := mdscan.Categorize(lines)

	var out []string
	for i := 0; i < len(lines); i++ {
		c := cats[i]
		open := c.Tag == "include" && !c.Closing &&
			(c.Category == mdscan.NormalInclude || c.Category == mdscan.VerbatimInclude)
		if !open {
			// Dangling close markers are re-emitted with their directive,
			// so a bare one outside any block is dropped.
			if c.Tag == "include" && c.Closing && c.Category == mdscan.NormalInclude {
				continue
			}
			out = append(out, lines[i])
			continue
		}

		content, err := e.generate(c.Attrs, dir, depth)
		if err != nil {
			return nil, err
		}
		out = append(out, lines[i])
		out = append(out, content...)
		out = append(out, "<!-- </include> -->")
		i = skipStale(cats, i)
	}
	return out, nil
}

// generate produces the lines a directive expands to.
func (e *Expander) generate(attrs map[string]string, dir string, depth int) ([]string, error) {
	lang := attrs["lang"]
	switch {
	case attrs["file"] != "":
		path := resolve(dir, attrs["file"])
		lines, err := doc.Load(path)
		if err != nil {
			return nil, fmt.Errorf("include file %q: %w", attrs["file"], err)
		}
		if lang != "" {
			return fence(lang, lines), nil
		}
		return e.expand(lines, filepath.Dir(path), depth+1)

	case attrs["command"] != "":
		stdout, err := e.Runner.Run(attrs["command"])
		if err != nil {
			return nil, fmt.Errorf("include command %q: %w", attrs["command"], err)
		}
		lines := splitOutput(stdout)
		if lang != "" {
			return fence(lang, lines), nil
		}
		if mdFile := attrs["md-file"]; mdFile != "" {
			path := resolve(dir, mdFile)
			if err := doc.Save(path, lines); err != nil {
				return nil, fmt.Errorf("include md-file %q: %w", mdFile, err)
			}
			return e.expand(lines, filepath.Dir(path), depth+1)
		}
		return lines, nil
	}
	return nil, fmt.Errorf("include directive needs a file or command attribute")
}

// skipStale advances past previously expanded content, through the
// close marker matching the open directive at index i.
func skipStale(cats []mdscan.Line, i int) int {
	if cats[i].Category == mdscan.VerbatimInclude {
		// The scanner flags only the outermost close; inner markers are
		// plain interior lines.
		for j := i + 1; j < len(cats); j++ {
			if cats[j].Category == mdscan.VerbatimInclude && cats[j].Closing {
				return j
			}
		}
		return i
	}
	depth := 1
	for j := i + 1; j < len(cats); j++ {
		if cats[j].Category != mdscan.NormalInclude {
			continue
		}
		if cats[j].Closing {
			depth--
			if depth == 0 {
				return j
			}
		} else {
			depth++
		}
	}
	return i
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func fence(lang string, lines []string) []string {
	out := make([]string, 0, len(lines)+2)
	out = append(out, "```"+lang)
	out = append(out, lines...)
	out = append(out, "```")
	return out
}

func splitOutput(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
