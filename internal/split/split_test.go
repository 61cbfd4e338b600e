package split

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	lines := []string{
		"# Book",
		"[intro](#intro)",
		`<!-- <section file="chapters/one.md"> -->`,
		"# Intro",
		"text [also](#summary)",
		"<!-- </section> -->",
		`<!-- <section file="chapters/two.md"> -->`,
		"# Summary",
		"back [to intro](#intro)",
		"<!-- </section> -->",
	}
	res := Split("master.md", lines)

	expectedMaster := []string{
		"# Book",
		"[intro](chapters/one.md#intro)",
		"- [Intro](chapters/one.md)",
		"- [Summary](chapters/two.md)",
	}
	if !reflect.DeepEqual(res.Master, expectedMaster) {
		t.Errorf("master:\ngot:      %v\nexpected: %v", res.Master, expectedMaster)
	}

	if len(res.Sections) != 2 {
		t.Fatalf("got %d sections, expected 2", len(res.Sections))
	}
	one := res.Sections[0]
	if one.File != "chapters/one.md" || one.Title != "Intro" {
		t.Errorf("section 0: %+v", one)
	}
	expectedOne := []string{"# Intro", "text [also](two.md#summary)"}
	if !reflect.DeepEqual(one.Lines, expectedOne) {
		t.Errorf("section 0 lines:\ngot:      %v\nexpected: %v", one.Lines, expectedOne)
	}
	expectedTwo := []string{"# Summary", "back [to intro](one.md#intro)"}
	if !reflect.DeepEqual(res.Sections[1].Lines, expectedTwo) {
		t.Errorf("section 1 lines:\ngot:      %v\nexpected: %v", res.Sections[1].Lines, expectedTwo)
	}

	expectedAnchors := map[string]string{
		"book":    "master.md",
		"intro":   "chapters/one.md",
		"summary": "chapters/two.md",
	}
	if !reflect.DeepEqual(res.Anchors, expectedAnchors) {
		t.Errorf("anchors:\ngot:      %v\nexpected: %v", res.Anchors, expectedAnchors)
	}
}

func TestSplitMissingClose(t *testing.T) {
	lines := []string{
		"preamble",
		`<!-- <section file="tail.md"> -->`,
		"# Tail",
		"rest of document",
	}
	res := Split("master.md", lines)
	if len(res.Sections) != 1 {
		t.Fatalf("got %d sections, expected 1", len(res.Sections))
	}
	expected := []string{"# Tail", "rest of document"}
	if !reflect.DeepEqual(res.Sections[0].Lines, expected) {
		t.Errorf("section runs to end of document: %v", res.Sections[0].Lines)
	}
	if !reflect.DeepEqual(res.Master, []string{"preamble", "- [Tail](tail.md)"}) {
		t.Errorf("master: %v", res.Master)
	}
}

func TestSplitNoFileAttrLeftInPlace(t *testing.T) {
	lines := []string{
		"<!-- <section> -->",
		"kept",
		"<!-- </section> -->",
	}
	res := Split("master.md", lines)
	if len(res.Sections) != 0 {
		t.Fatalf("sections from markers without file attr: %v", res.Sections)
	}
	// The stray close marker is kept too; split never invents content.
	if !reflect.DeepEqual(res.Master, lines) {
		t.Errorf("master altered: %v", res.Master)
	}
}

func TestSplitTitleFallsBackToFile(t *testing.T) {
	lines := []string{
		`<!-- <section file="notes.md"> -->`,
		"no headings here",
		"<!-- </section> -->",
	}
	res := Split("master.md", lines)
	if res.Sections[0].Title != "notes.md" {
		t.Errorf("title: got %q, expected file path", res.Sections[0].Title)
	}
}
