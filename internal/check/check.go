// Package check validates fragment links against an independent
// goldmark parse of the document. It reports problems and never
// rewrites anything.
package check

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/gubarz/mdgen/internal/anchor"
)

// Problem is one fragment link that resolves to no heading anchor.
type Problem struct {
	File   string
	Line   int // 1-based, best effort
	Target string
}

type fragment struct {
	target string
	line   int
}

// File parses src and returns every in-document fragment link whose
// slug matches no heading anchor, in document order.
func File(name string, src []byte) []Problem {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	table := anchor.NewTable()
	anchors := make(map[string]bool)
	var frags []fragment

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			anchors[table.Unique(string(node.Text(src)))] = true
		case *ast.Link:
			dest := string(node.Destination)
			if strings.HasPrefix(dest, "#") {
				frags = append(frags, fragment{target: dest, line: lineOf(src, nodeOffset(node))})
			}
		}
		return ast.WalkContinue, nil
	})

	var probs []Problem
	for _, f := range frags {
		if !anchors[strings.TrimPrefix(f.target, "#")] {
			probs = append(probs, Problem{File: name, Line: f.line, Target: f.target})
		}
	}
	return probs
}

// nodeOffset finds a source offset for an inline node via its first
// text descendant, or -1.
func nodeOffset(n ast.Node) int {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			return t.Segment.Start
		}
		if off := nodeOffset(c); off >= 0 {
			return off
		}
	}
	return -1
}

func lineOf(src []byte, off int) int {
	if off < 0 || off > len(src) {
		return 0
	}
	return 1 + bytes.Count(src[:off], []byte("\n"))
}
