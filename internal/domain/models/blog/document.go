package blog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Document is an authored post. Blocks are the canonical content; every
// other store is derived from them.
type Document struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Date      string   `json:"date"`
	Thumbnail string   `json:"thumbnail"`
	Blocks    []Block  `json:"blocks"`
}

// IndexEntry is the publicly listed projection of a Document
type IndexEntry struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Date      string   `json:"date"`
	Thumbnail string   `json:"thumbnail"`
}

// Entry projects the document onto its index record
func (d *Document) Entry() IndexEntry {
	return IndexEntry{
		ID:        d.ID,
		Title:     d.Title,
		Authors:   d.Authors,
		Date:      d.Date,
		Thumbnail: d.Thumbnail,
	}
}

// ParseAuthors splits a comma-separated author list, trimming each name and
// dropping empty tokens.
func ParseAuthors(raw string) []string {
	authors := []string{}
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}

// NormalizeAuthors applies the ParseAuthors rules to an already split list
func NormalizeAuthors(names []string) []string {
	authors := []string{}
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}

// blockIDNamespace scopes the ids derived for blocks that arrive without one
var blockIDNamespace = uuid.MustParse("6f1c1f52-7a0e-4c55-9d3e-2b8f4f6f0b1a")

// NormalizeBlocks prepares an editor-supplied block sequence for storage:
// missing or repeated block ids are replaced by an id derived from the
// block's position and type, header levels outside h1..h6 become
// DefaultHeaderLevel and nil content is dropped. The same input always
// yields the same output. The input slice is not modified.
func NormalizeBlocks(blocks []Block) []Block {
	out := make([]Block, 0, len(blocks))
	seen := make(map[string]struct{}, len(blocks))
	for _, b := range blocks {
		if b.ID != "" {
			seen[b.ID] = struct{}{}
		}
	}
	assigned := make(map[string]struct{}, len(blocks))

	for i, b := range blocks {
		if b.Content == nil {
			continue
		}

		if _, dup := assigned[b.ID]; b.ID == "" || dup {
			b.ID = derivedBlockID(i, b.Type(), seen)
			seen[b.ID] = struct{}{}
		}
		assigned[b.ID] = struct{}{}

		if h, ok := b.Content.(HeaderContent); ok && !IsHeaderLevel(h.Level) {
			h.Level = DefaultHeaderLevel
			b.Content = h
		}

		out = append(out, b)
	}

	return out
}

// derivedBlockID returns a name-based UUID for the block at pos, skipping
// any value already in use
func derivedBlockID(pos int, t BlockType, inUse map[string]struct{}) string {
	for attempt := 0; ; attempt++ {
		name := fmt.Sprintf("%d/%s/%d", pos, t, attempt)
		id := uuid.NewSHA1(blockIDNamespace, []byte(name)).String()
		if _, taken := inUse[id]; !taken {
			return id
		}
	}
}
