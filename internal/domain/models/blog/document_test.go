package blog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseAuthors(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"Ada", []string{"Ada"}},
		{" Ada ,Grace Hopper,  ", []string{"Ada", "Grace Hopper"}},
		{",,,", []string{}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseAuthors(tt.raw)); diff != "" {
				t.Errorf("ParseAuthors(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestNormalizeBlocks(t *testing.T) {
	in := []Block{
		{ID: "a", Content: HeaderContent{Level: "h9", Text: "x"}},
		{ID: "", Content: ParagraphContent{Text: "no id"}},
		{ID: "a", Content: CodeContent{Text: "dup id"}},
		{ID: "gone", Content: nil},
	}
	original := append([]Block(nil), in...)

	out := NormalizeBlocks(in)

	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if out[0].Content != (HeaderContent{Level: DefaultHeaderLevel, Text: "x"}) {
		t.Errorf("header not normalized: %+v", out[0].Content)
	}

	seen := map[string]bool{}
	for _, b := range out {
		if b.ID == "" || seen[b.ID] {
			t.Errorf("id %q empty or repeated", b.ID)
		}
		seen[b.ID] = true
	}
	if out[0].ID != "a" {
		t.Errorf("first id = %q, want a kept", out[0].ID)
	}

	if diff := cmp.Diff(original, in); diff != "" {
		t.Errorf("input modified (-before +after):\n%s", diff)
	}
}

func TestNormalizeBlocksIsDeterministic(t *testing.T) {
	in := []Block{
		{Content: ParagraphContent{Text: "one"}},
		{ID: "x", Content: CodeContent{Text: "two"}},
		{ID: "x", Content: ParagraphContent{Text: "three"}},
		{Content: ParagraphContent{Text: "four"}},
	}

	first := NormalizeBlocks(in)
	second := NormalizeBlocks(in)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("normalizing twice differs (-first +second):\n%s", diff)
	}

	// normalized output is a fixed point
	if diff := cmp.Diff(first, NormalizeBlocks(first)); diff != "" {
		t.Errorf("re-normalizing changed ids (-first +again):\n%s", diff)
	}

	if first[0].ID == first[3].ID {
		t.Error("blocks without ids at different positions share an id")
	}
}

func TestNormalizeBlocksAvoidsSuppliedIDs(t *testing.T) {
	derived := NormalizeBlocks([]Block{{Content: ParagraphContent{}}})[0].ID

	// a later block already owns the id the first would derive
	out := NormalizeBlocks([]Block{
		{Content: ParagraphContent{}},
		{ID: derived, Content: CodeContent{}},
	})
	if out[0].ID == derived || out[1].ID != derived {
		t.Errorf("ids = %q, %q; supplied id %q must stay with its block", out[0].ID, out[1].ID, derived)
	}
}

func TestDocumentEntry(t *testing.T) {
	d := Document{ID: "x", Title: "T", Authors: []string{"A"}, Date: "d", Thumbnail: "th", Blocks: []Block{{ID: "b"}}}
	want := IndexEntry{ID: "x", Title: "T", Authors: []string{"A"}, Date: "d", Thumbnail: "th"}
	if diff := cmp.Diff(want, d.Entry()); diff != "" {
		t.Errorf("Entry() mismatch (-want +got):\n%s", diff)
	}
}
