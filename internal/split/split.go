// Package split extracts section regions of a document into standalone
// files and rewrites fragment links so they keep working across the
// new file boundaries.
package split

import (
	"strings"

	"github.com/gubarz/mdgen/internal/anchor"
	"github.com/gubarz/mdgen/internal/link"
	"github.com/gubarz/mdgen/internal/mdscan"
)

// Section is one extracted region of the master document.
type Section struct {
	File  string // target path from the directive, relative to the master
	Title string // first heading inside the region, or the file path
	Lines []string
}

// Result is a completed split. All paths are relative to the master
// document's directory; the caller performs the actual file writes.
type Result struct {
	Master   []string
	Sections []Section
	Anchors  map[string]string // heading slug -> file now holding it
}

// Split cuts each <section file="..."> region out of lines. masterName
// is the master document's own file name, used as the link origin for
// path traversal. Section markers without a file attribute are left in
// place; a missing close marker extends the section to end of
// document.
func Split(masterName string, lines []string) *Result {
	cats, _ := mdscan.Categorize(lines)

	res := &Result{Anchors: make(map[string]string)}
	var master []string
	for i := 0; i < len(lines); i++ {
		c := cats[i]
		if c.Category != mdscan.SectionBlock || c.Closing || c.Attrs["file"] == "" {
			master = append(master, lines[i])
			continue
		}

		end := len(lines)
		for j := i + 1; j < len(lines); j++ {
			if cats[j].Category == mdscan.SectionBlock && cats[j].Closing {
				end = j
				break
			}
		}
		sec := Section{
			File:  c.Attrs["file"],
			Lines: append([]string(nil), lines[i+1:end]...),
		}
		sec.Title = sectionTitle(sec)
		res.Sections = append(res.Sections, sec)
		master = append(master, "- ["+sec.Title+"]("+sec.File+")")
		if end < len(lines) {
			i = end
		} else {
			i = len(lines)
		}
	}
	res.Master = master

	collectAnchors(res, masterName)
	rewriteAll(res, masterName)
	return res
}

func sectionTitle(sec Section) string {
	_, heads := mdscan.Categorize(sec.Lines)
	if len(heads) > 0 {
		return strings.TrimSpace(heads[0].Text)
	}
	return sec.File
}

// collectAnchors maps every heading slug to the file that holds it
// after the split. Each file scopes its own slug table, matching what
// a renderer anchors per document.
func collectAnchors(res *Result, masterName string) {
	perFile := func(name string, lines []string) {
		table := anchor.NewTable()
		_, heads := mdscan.Categorize(lines)
		for _, h := range heads {
			slug := table.Unique(h.Text)
			if _, taken := res.Anchors[slug]; !taken {
				res.Anchors[slug] = name
			}
		}
	}
	perFile(masterName, res.Master)
	for _, sec := range res.Sections {
		perFile(sec.File, sec.Lines)
	}
}

// rewriteAll points fragment-only links in every output file at the
// file that now holds the heading. Only hyperlink-bearing lines are
// touched; code block content is never rewritten.
func rewriteAll(res *Result, masterName string) {
	rewrite := func(name string, lines []string) []string {
		cats, _ := mdscan.Categorize(lines)
		out := make([]string, len(lines))
		for i, ln := range lines {
			if cats[i].Category == mdscan.Hyperlink {
				out[i] = link.RewriteFragments(ln, name, res.Anchors)
			} else {
				out[i] = ln
			}
		}
		return out
	}
	res.Master = rewrite(masterName, res.Master)
	for i := range res.Sections {
		res.Sections[i].Lines = rewrite(res.Sections[i].File, res.Sections[i].Lines)
	}
}
