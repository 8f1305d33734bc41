// Package artifact embeds the structured block sequence in the rendered
// page so one stored file is both the published output and the editable
// source.
//
// Layout:
//
//	<markup>
//	<!-- EDITOR_DATA
//	<blocks as JSON>
//	-->
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	models "folio/internal/domain/models/blog"
)

const (
	openMarker  = "<!-- EDITOR_DATA"
	closeMarker = "-->"
)

// ErrTrailerNotFound is returned by Decode when the artifact carries no
// editor trailer
var ErrTrailerNotFound = errors.New("editor trailer not found")

// Encode appends the block sequence to markup as a non-rendering trailer.
// encoding/json escapes '<' and '>' inside strings, so the payload can
// never contain the closing delimiter.
func Encode(markup string, blocks []models.Block) (string, error) {
	if blocks == nil {
		blocks = []models.Block{}
	}

	payload, err := json.Marshal(blocks)
	if err != nil {
		return "", fmt.Errorf("encode blocks: %w", err)
	}

	var b strings.Builder
	b.Grow(len(markup) + len(payload) + len(openMarker) + len(closeMarker) + 3)
	b.WriteString(markup)
	b.WriteString("\n" + openMarker + "\n")
	b.Write(payload)
	b.WriteString("\n" + closeMarker)

	return b.String(), nil
}

// Decode recovers the block sequence from an artifact. The trailer is the
// last opening marker in the text (it is always appended last, while
// unescaped paragraph text could contain the marker) followed by the next
// closing delimiter.
func Decode(text string) ([]models.Block, error) {
	payload, _, ok := split(text)
	if !ok {
		return nil, ErrTrailerNotFound
	}

	var blocks []models.Block
	if err := json.Unmarshal([]byte(payload), &blocks); err != nil {
		return nil, fmt.Errorf("decode editor trailer: %w", err)
	}
	if blocks == nil {
		blocks = []models.Block{}
	}

	return blocks, nil
}

// Markup returns the artifact with its trailer removed. Artifacts without a
// trailer are returned unchanged.
func Markup(text string) string {
	if _, markup, ok := split(text); ok {
		return markup
	}
	return text
}

// split locates the trailer and returns its trimmed payload and the markup
// preceding it
func split(text string) (payload, markup string, ok bool) {
	start := strings.LastIndex(text, openMarker)
	if start < 0 {
		return "", "", false
	}

	rest := text[start+len(openMarker):]
	end := strings.Index(rest, closeMarker)
	if end < 0 {
		return "", "", false
	}

	markup = strings.TrimSuffix(text[:start], "\n")
	return strings.TrimSpace(rest[:end]), markup, true
}
