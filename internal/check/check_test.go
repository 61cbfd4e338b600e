package check

import "testing"

func TestFile(t *testing.T) {
	src := []byte("# Hello\n[ok](#hello)\n[bad](#nope)\n")
	probs := File("doc.md", src)
	if len(probs) != 1 {
		t.Fatalf("got %d problems, expected 1: %v", len(probs), probs)
	}
	p := probs[0]
	if p.File != "doc.md" || p.Target != "#nope" {
		t.Errorf("problem: %+v", p)
	}
	if p.Line != 3 {
		t.Errorf("line: got %d, expected 3", p.Line)
	}
}

func TestFileClean(t *testing.T) {
	src := []byte("# One\n\n## Two words\n\n[a](#one) [b](#two-words)\n")
	if probs := File("doc.md", src); len(probs) != 0 {
		t.Errorf("unexpected problems: %v", probs)
	}
}

func TestFileDuplicateHeadings(t *testing.T) {
	// Repeated headings anchor as setup, setup-1; both must resolve.
	src := []byte("# Setup\n\n# Setup\n\n[a](#setup) [b](#setup-1) [c](#setup-2)\n")
	probs := File("doc.md", src)
	if len(probs) != 1 || probs[0].Target != "#setup-2" {
		t.Errorf("got %v, expected only #setup-2 unresolved", probs)
	}
}

func TestFileIgnoresExternalAndPathLinks(t *testing.T) {
	src := []byte("[w](https://example.com) [p](other.md#frag)\n")
	if probs := File("doc.md", src); len(probs) != 0 {
		t.Errorf("non-fragment links reported: %v", probs)
	}
}
