// Package mdscan classifies the lines of a Markdown document.
//
// The scanner is a single-pass automaton: it assigns exactly one
// Category per line while tracking open block state (fenced and
// indented code, multi-line comments, verbatim include blocks, TOC
// blocks). Directive comments that don't parse fall through to plain
// comment or text classification; the scanner never fails.
package mdscan

import (
	"regexp"
	"strings"
)

// Category labels a single document line.
type Category int

const (
	Other Category = iota
	Heading
	FencedBacktick
	FencedTilde
	IndentedCode
	CommentBlock
	TocBlock
	SectionBlock
	VerbatimInclude
	NormalInclude
	Figure
	Table
	Hyperlink
)

var categoryNames = map[Category]string{
	Other:           "other",
	Heading:         "heading",
	FencedBacktick:  "fenced-backtick",
	FencedTilde:     "fenced-tilde",
	IndentedCode:    "indented-code",
	CommentBlock:    "comment",
	TocBlock:        "toc",
	SectionBlock:    "section",
	VerbatimInclude: "verbatim-include",
	NormalInclude:   "include",
	Figure:          "figure",
	Table:           "table",
	Hyperlink:       "hyperlink",
}

func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return "unknown"
}

// Line is the classification result for one document line.
type Line struct {
	Category Category
	Level    int               // heading level 1..6, for Category == Heading
	Tag      string            // directive tag name (toc, section, include, figure, table)
	Closing  bool              // directive is a closing tag
	Attrs    map[string]string // directive attributes (file, caption, lang, command, md-file, title)
}

// HeadingInfo records one recognized heading, ATX or setext, in
// document order. Text excludes the leading hashmarks.
type HeadingInfo struct {
	Text  string
	Level int
	Index int // 0-based line index of the heading text line
}

var (
	atxRe        = regexp.MustCompile(`^\s*(#{1,6})\s+(.+?)\s*$`)
	setextEqRe   = regexp.MustCompile(`^\s*=[=\s]*$`)
	setextDashRe = regexp.MustCompile(`^\s*-[-\s]*$`)
	// One directive comment per physical line, e.g.
	// <!-- <include file="x" lang="sh"> --> or <!-- </toc> -->.
	directiveRe = regexp.MustCompile(`^\s*<!--\s*<(/?)([a-z][a-z-]*)((?:\s+[\w-]+="[^"]*")*)\s*/?>\s*-->\s*$`)
	attrRe      = regexp.MustCompile(`([\w-]+)="([^"]*)"`)
	inlineLink  = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)
)

type state int

const (
	stateNone state = iota
	stateBacktick
	stateTilde
	stateIndented
	stateComment
	stateVerbatim
	stateToc
)

// Scanner is the categorization automaton. Feed lines in document
// order; block state persists across calls, so a document can be
// classified incrementally without re-scanning.
type Scanner struct {
	st        state
	depth     int // verbatim include nesting
	prev      string
	prevBlank bool
	prevCat   Category
	index     int
	headings  []HeadingInfo
}

// NewScanner returns a Scanner positioned before the first line.
func NewScanner() *Scanner {
	return &Scanner{prevBlank: true}
}

// Headings returns every heading recognized so far, in document order.
func (s *Scanner) Headings() []HeadingInfo {
	return s.headings
}

// Feed classifies the next line. When a setext underline retroactively
// promotes the preceding line to a heading, relabel is non-nil and
// replaces the Line previously reported for that line.
func (s *Scanner) Feed(raw string) (cur Line, relabel *Line) {
	idx := s.index
	s.index++
	prev, prevBlank, prevCat := s.prev, s.prevBlank, s.prevCat
	s.prev = raw
	s.prevBlank = strings.TrimSpace(raw) == ""

	cur, relabel = s.classify(idx, raw, prev, prevBlank, prevCat)
	s.prevCat = cur.Category
	return cur, relabel
}

func (s *Scanner) classify(idx int, raw, prev string, prevBlank bool, prevCat Category) (Line, *Line) {
	// Open block state has absolute priority: content inside a block is
	// never reinterpreted as a directive, heading, or hyperlink.
	switch s.st {
	case stateBacktick:
		if strings.HasPrefix(raw, "```") {
			s.st = stateNone
		}
		return Line{Category: FencedBacktick}, nil
	case stateTilde:
		if strings.HasPrefix(raw, "~~~") {
			s.st = stateNone
		}
		return Line{Category: FencedTilde}, nil
	case stateIndented:
		if strings.HasPrefix(raw, "    ") {
			return Line{Category: IndentedCode}, nil
		}
		s.st = stateNone
		// The terminating line is classified on its own merits below.
	case stateComment:
		if strings.Contains(raw, "-->") {
			s.st = stateNone
		}
		return Line{Category: CommentBlock}, nil
	case stateVerbatim:
		if tag, closing, _, ok := parseDirective(raw); ok && tag == "include" {
			if closing {
				s.depth--
				if s.depth == 0 {
					s.st = stateNone
					return Line{Category: VerbatimInclude, Tag: tag, Closing: true}, nil
				}
			} else {
				s.depth++
			}
		}
		// Inner markers are tracked for depth only, never interpreted.
		return Line{Category: VerbatimInclude}, nil
	case stateToc:
		if tag, closing, _, ok := parseDirective(raw); ok && tag == "toc" && closing {
			s.st = stateNone
			return Line{Category: TocBlock, Tag: tag, Closing: true}, nil
		}
		return Line{Category: TocBlock}, nil
	}

	// No block open: test in priority order.
	if strings.HasPrefix(raw, "```") {
		s.st = stateBacktick
		return Line{Category: FencedBacktick}, nil
	}
	if strings.HasPrefix(raw, "~~~") {
		s.st = stateTilde
		return Line{Category: FencedTilde}, nil
	}
	if prevBlank && isIndentedCodeStart(raw) {
		s.st = stateIndented
		return Line{Category: IndentedCode}, nil
	}

	if tag, closing, attrs, ok := parseDirective(raw); ok {
		if ln, ok := s.directive(tag, closing, attrs); ok {
			return ln, nil
		}
		// Unknown directive tags are plain single-line comments.
		return Line{Category: CommentBlock}, nil
	}
	if t := strings.TrimSpace(raw); strings.HasPrefix(t, "<!--") {
		if !strings.Contains(t, "-->") {
			s.st = stateComment
		}
		return Line{Category: CommentBlock}, nil
	}

	if m := atxRe.FindStringSubmatch(raw); m != nil {
		lvl := len(m[1])
		s.headings = append(s.headings, HeadingInfo{Text: m[2], Level: lvl, Index: idx})
		return Line{Category: Heading, Level: lvl}, nil
	}
	if lvl := setextLevel(raw, prev, prevBlank, prevCat); lvl > 0 {
		s.headings = append(s.headings, HeadingInfo{
			Text:  strings.TrimSpace(prev),
			Level: lvl,
			Index: idx - 1,
		})
		return Line{Category: Other}, &Line{Category: Heading, Level: lvl}
	}

	if inlineLink.MatchString(raw) {
		return Line{Category: Hyperlink}, nil
	}
	return Line{Category: Other}, nil
}

// directive maps a recognized directive tag to its category and opens
// multi-line state where the tag calls for it.
func (s *Scanner) directive(tag string, closing bool, attrs map[string]string) (Line, bool) {
	ln := Line{Tag: tag, Closing: closing, Attrs: attrs}
	switch tag {
	case "toc":
		ln.Category = TocBlock
		if !closing {
			s.st = stateToc
		}
	case "section":
		ln.Category = SectionBlock
	case "include":
		if !closing && attrs["lang"] != "" {
			ln.Category = VerbatimInclude
			s.st = stateVerbatim
			s.depth = 1
		} else {
			// Normal include markers carry no multi-line state: the
			// content between open and close is categorized on its own.
			ln.Category = NormalInclude
		}
	case "figure":
		ln.Category = Figure
	case "table":
		ln.Category = Table
	default:
		return Line{}, false
	}
	return ln, true
}

// setextLevel reports the heading level a setext underline confers on
// the previous line, or 0. An underline-looking previous line is never
// promoted, whatever its character, and only plain text or hyperlink
// lines can be.
func setextLevel(raw, prev string, prevBlank bool, prevCat Category) int {
	if prevBlank || (prevCat != Other && prevCat != Hyperlink) {
		return 0
	}
	if setextEqRe.MatchString(prev) || setextDashRe.MatchString(prev) {
		return 0
	}
	if setextEqRe.MatchString(raw) {
		return 1
	}
	if setextDashRe.MatchString(raw) {
		return 2
	}
	return 0
}

// isIndentedCodeStart reports whether a line opens an indented code
// block: four leading spaces, then a character that isn't a list
// marker. Only valid after a blank line.
func isIndentedCodeStart(raw string) bool {
	if !strings.HasPrefix(raw, "    ") || len(raw) < 5 {
		return false
	}
	switch raw[4] {
	case '*', '+', '-':
		return false
	}
	return strings.TrimSpace(raw) != ""
}

func parseDirective(line string) (tag string, closing bool, attrs map[string]string, ok bool) {
	m := directiveRe.FindStringSubmatch(line)
	if m == nil {
		return "", false, nil, false
	}
	attrs = make(map[string]string)
	for _, am := range attrRe.FindAllStringSubmatch(m[3], -1) {
		attrs[am[1]] = am[2]
	}
	return m[2], m[1] == "/", attrs, true
}

// Categorize runs a fresh Scanner over the whole document. It returns
// one Line per input line, with setext relabeling already applied, and
// every heading found, in document order.
func Categorize(lines []string) ([]Line, []HeadingInfo) {
	s := NewScanner()
	out := make([]Line, len(lines))
	for i, ln := range lines {
		cur, relabel := s.Feed(ln)
		out[i] = cur
		if relabel != nil && i > 0 {
			out[i-1] = *relabel
		}
	}
	return out, s.Headings()
}
