package blog

import (
	"unicode/utf8"

	"folio/internal/config"
)

// Ellipsis terminates truncated snippets
const Ellipsis = "..."

// TruncateSnippet keeps the first config.SnippetMaxLength characters of
// source and appends Ellipsis when anything was cut. Length is counted in
// runes so multi-byte text is never split mid-character.
func TruncateSnippet(source string) string {
	if utf8.RuneCountInString(source) <= config.SnippetMaxLength {
		return source
	}

	n := 0
	for i := range source {
		if n == config.SnippetMaxLength {
			return source[:i] + Ellipsis
		}
		n++
	}
	return source
}
