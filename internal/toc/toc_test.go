package toc

import (
	"reflect"
	"testing"

	"github.com/gubarz/mdgen/internal/mdscan"
)

func TestNumberer(t *testing.T) {
	tests := []struct {
		name     string
		levels   []int
		opts     Options
		expected []string
	}{
		{
			name:     "no exclusions",
			levels:   []int{1, 2, 2, 3, 1, 2},
			expected: []string{"1.", "1.1.", "1.2.", "1.2.1.", "2.", "2.1."},
		},
		{
			name:     "deep reset cascades",
			levels:   []int{1, 3, 3, 1, 3},
			expected: []string{"1.", "1.1.", "1.2.", "2.", "2.1."},
		},
		{
			name:     "excluded level is invisible",
			levels:   []int{1, 2, 2},
			opts:     Options{ExcludeLevels: map[int]bool{1: true}},
			expected: []string{"", "1.", "2."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNumberer(tt.opts)
			for i, lvl := range tt.levels {
				got := n.Number(mdscan.HeadingInfo{Text: "h", Level: lvl, Index: i})
				if got != tt.expected[i] {
					t.Errorf("heading %d (level %d): got %q, expected %q", i, lvl, got, tt.expected[i])
				}
			}
		})
	}
}

func TestNumbererExcludedTitle(t *testing.T) {
	n := NewNumberer(Options{ExcludeTitles: map[string]bool{"Appendix": true}})
	if got := n.Number(mdscan.HeadingInfo{Text: "Intro", Level: 1}); got != "1." {
		t.Errorf("got %q, expected %q", got, "1.")
	}
	if got := n.Number(mdscan.HeadingInfo{Text: "Appendix", Level: 1}); got != "" {
		t.Errorf("excluded title numbered: %q", got)
	}
	// Numbering-stripped titles are matched too.
	if got := n.Number(mdscan.HeadingInfo{Text: "3. Appendix", Level: 1}); got != "" {
		t.Errorf("numbered excluded title numbered: %q", got)
	}
	if got := n.Number(mdscan.HeadingInfo{Text: "Next", Level: 1}); got != "2." {
		t.Errorf("got %q, expected %q", got, "2.")
	}
}

func TestAssemble(t *testing.T) {
	lines := []string{
		"# Guide",
		"<!-- <toc> -->",
		"<!-- </toc> -->",
		"## Install",
		"### Linux",
		"## Usage",
		"# Appendix",
	}
	expected := []string{
		"# Guide",
		"<!-- <toc> -->",
		"- [Install](#install)",
		"  - [Linux](#linux)",
		"- [Usage](#usage)",
		"<!-- </toc> -->",
		"## Install",
		"### Linux",
		"## Usage",
		"# Appendix",
	}
	got := Assemble(lines, Options{})
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("got:\n%v\nexpected:\n%v", got, expected)
	}
}

func TestAssembleIdempotent(t *testing.T) {
	lines := []string{
		"# Guide",
		"<!-- <toc title=\"Contents\"> -->",
		"stale entry",
		"<!-- </toc> -->",
		"## A",
		"## A",
		"## B",
	}
	once := Assemble(lines, Options{Marker: "1."})
	twice := Assemble(once, Options{Marker: "1."})
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestAssembleSlugCollisions(t *testing.T) {
	lines := []string{
		"# Guide",
		"<!-- <toc> -->",
		"<!-- </toc> -->",
		"## Setup",
		"## Setup",
	}
	got := Assemble(lines, Options{})
	expected := []string{
		"# Guide",
		"<!-- <toc> -->",
		"- [Setup](#setup)",
		"- [Setup](#setup-1)",
		"<!-- </toc> -->",
		"## Setup",
		"## Setup",
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("got:\n%v\nexpected:\n%v", got, expected)
	}
}

func TestAssembleDeclaredLevel(t *testing.T) {
	lines := []string{
		"# Top",
		"## Sub",
		"<!-- <toc> -->",
		"<!-- </toc> -->",
		"### Inside",
		"#### Deeper",
		"## Next sub",
		"### Not listed",
	}
	got := Assemble(lines, Options{})
	expected := []string{
		"# Top",
		"## Sub",
		"<!-- <toc> -->",
		"- [Inside](#inside)",
		"  - [Deeper](#deeper)",
		"<!-- </toc> -->",
		"### Inside",
		"#### Deeper",
		"## Next sub",
		"### Not listed",
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("got:\n%v\nexpected:\n%v", got, expected)
	}
}

func TestRenumber(t *testing.T) {
	lines := []string{
		"# 9. Alpha",
		"",
		"## Beta gamma",
		"see [b](#beta-gamma)",
	}
	got, remap := Renumber(lines, Options{})
	expected := []string{
		"# 1. Alpha",
		"",
		"## 1.1. Beta gamma",
		"see [b](#beta-gamma)",
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("got:\n%v\nexpected:\n%v", got, expected)
	}
	if remap["alpha"] != "alpha" || remap["beta-gamma"] != "beta-gamma" {
		t.Errorf("unexpected remap: %v", remap)
	}
}

func TestRenumberSetext(t *testing.T) {
	lines := []string{
		"Alpha",
		"=====",
		"Beta",
		"----",
	}
	got, _ := Renumber(lines, Options{})
	expected := []string{
		"1. Alpha",
		"=====",
		"1.1. Beta",
		"----",
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("got:\n%v\nexpected:\n%v", got, expected)
	}
}

func TestFindBlocksDefaultLevel(t *testing.T) {
	lines := []string{
		"<!-- <toc> -->",
		"<!-- </toc> -->",
		"# First",
	}
	cats, heads := mdscan.Categorize(lines)
	blocks := FindBlocks(cats, heads)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, expected 1", len(blocks))
	}
	if blocks[0].Level != 1 {
		t.Errorf("declared level at document start: got %d, expected 1", blocks[0].Level)
	}
}
