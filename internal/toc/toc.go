// Package toc numbers headings and assembles tables of contents from
// categorized documents.
package toc

import (
	"fmt"
	"strings"

	"github.com/gubarz/mdgen/internal/anchor"
	"github.com/gubarz/mdgen/internal/mdscan"
)

// Options controls numbering and TOC rendering.
type Options struct {
	Marker        string          // list marker: "-" (bulleted) or "1." (numbered)
	ExcludeLevels map[int]bool    // heading levels left unnumbered
	ExcludeTitles map[string]bool // heading titles (numbering-stripped) left unnumbered
}

func (o Options) marker() string {
	if o.Marker == "1." {
		return "1."
	}
	return "-"
}

// indentUnit is the per-depth indentation width for the marker style:
// two spaces for "-", three for "1.".
func (o Options) indentUnit() int {
	if o.marker() == "1." {
		return 3
	}
	return 2
}

func (o Options) excluded(h mdscan.HeadingInfo) bool {
	if o.ExcludeLevels[h.Level] {
		return true
	}
	return o.ExcludeTitles[stripNumbering(h.Text)]
}

// Numberer assigns hierarchical dot-terminated numbers ("1.2.3.") to a
// heading sequence. Excluded headings are invisible to it: they get no
// number, consume no counter and reset nothing.
type Numberer struct {
	opts     Options
	counters [7]int // indexed by level 1..6
}

// NewNumberer returns a Numberer with all counters at zero.
func NewNumberer(opts Options) *Numberer {
	return &Numberer{opts: opts}
}

// Number returns the number string for the next heading in document
// order, or "" when the heading is excluded. A heading at level L
// increments counter L and resets every deeper counter; the emitted
// string joins all non-zero counters from level 1 down to L.
func (n *Numberer) Number(h mdscan.HeadingInfo) string {
	if h.Level < 1 || h.Level > 6 || n.opts.excluded(h) {
		return ""
	}
	n.counters[h.Level]++
	for l := h.Level + 1; l <= 6; l++ {
		n.counters[l] = 0
	}
	var b strings.Builder
	for l := 1; l <= h.Level; l++ {
		if n.counters[l] > 0 {
			fmt.Fprintf(&b, "%d.", n.counters[l])
		}
	}
	return b.String()
}

// Block is one <toc> region in a categorized document.
type Block struct {
	Start int    // line index of the open marker
	End   int    // line index of the close marker; len(lines) if missing
	Level int    // declared nesting level: level of the nearest preceding heading, 1 at document start
	Title string // optional title attribute
}

// FindBlocks locates every TOC region and its declared nesting level.
func FindBlocks(cats []mdscan.Line, heads []mdscan.HeadingInfo) []Block {
	var blocks []Block
	for i := 0; i < len(cats); i++ {
		c := cats[i]
		if c.Category != mdscan.TocBlock || c.Closing || c.Tag != "toc" {
			continue
		}
		b := Block{Start: i, End: len(cats), Level: 1, Title: c.Attrs["title"]}
		for j := i + 1; j < len(cats); j++ {
			if cats[j].Category == mdscan.TocBlock && cats[j].Closing {
				b.End = j
				break
			}
		}
		for _, h := range heads {
			if h.Index >= b.Start {
				break
			}
			b.Level = h.Level
		}
		blocks = append(blocks, b)
		if b.End < len(cats) {
			i = b.End
		} else {
			break
		}
	}
	return blocks
}

// Entry is one rendered TOC list item.
type Entry struct {
	Depth int // indentation depth, 0 for the shallowest included item
	Title string
	Slug  string
}

// collect gathers the headings a block covers: everything after its
// close marker up to the first heading at or above the block's
// declared level. slugs holds the document-scoped slug per heading,
// parallel to heads.
func collect(b Block, heads []mdscan.HeadingInfo, slugs []string) []Entry {
	var picked []int
	minLevel := 7
	for i, h := range heads {
		if h.Index <= b.End {
			continue
		}
		if h.Level <= b.Level {
			break
		}
		picked = append(picked, i)
		if h.Level < minLevel {
			minLevel = h.Level
		}
	}
	out := make([]Entry, 0, len(picked))
	for _, i := range picked {
		out = append(out, Entry{
			Depth: heads[i].Level - minLevel,
			Title: heads[i].Text,
			Slug:  slugs[i],
		})
	}
	return out
}

// Assemble refreshes every TOC block in the document and returns the
// rebuilt line buffer. Running it on its own output is a no-op.
func Assemble(lines []string, opts Options) []string {
	cats, heads := mdscan.Categorize(lines)
	blocks := FindBlocks(cats, heads)
	if len(blocks) == 0 {
		return lines
	}

	table := anchor.NewTable()
	slugs := make([]string, len(heads))
	for i, h := range heads {
		slugs[i] = table.Unique(h.Text)
	}

	rendered := make(map[int][]string, len(blocks)) // start index -> replacement
	skipTo := make(map[int]int, len(blocks))        // start index -> index after close
	for _, b := range blocks {
		rendered[b.Start] = render(b, lines, collect(b, heads, slugs), opts)
		if b.End < len(lines) {
			skipTo[b.Start] = b.End + 1
		} else {
			skipTo[b.Start] = len(lines)
		}
	}

	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		if rep, ok := rendered[i]; ok {
			out = append(out, rep...)
			i = skipTo[i] - 1
			continue
		}
		out = append(out, lines[i])
	}
	return out
}

// render produces the full replacement region: open marker, optional
// title, list items, close marker.
func render(b Block, lines []string, entries []Entry, opts Options) []string {
	out := []string{lines[b.Start]}
	if b.Title != "" {
		out = append(out, "**"+b.Title+"**", "")
	}
	marker := opts.marker()
	unit := opts.indentUnit()
	for _, e := range entries {
		out = append(out, fmt.Sprintf("%s%s [%s](#%s)",
			strings.Repeat(" ", e.Depth*unit), marker, e.Title, e.Slug))
	}
	out = append(out, "<!-- </toc> -->")
	return out
}
