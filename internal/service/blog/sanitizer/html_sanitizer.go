package sanitizer

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// HTMLSanitizer removes dangerous HTML elements and attributes.
//
// Thread-safe for concurrent use.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// NewHTMLSanitizer creates a sanitizer with the UGC (User Generated Content)
// policy: common formatting survives, scripts, event handlers and
// javascript: URLs are stripped. Iframes are not part of the UGC policy and
// are removed as well.
func NewHTMLSanitizer() *HTMLSanitizer {
	return &HTMLSanitizer{policy: bluemonday.UGCPolicy()}
}

// NewStrictHTMLSanitizer creates a sanitizer that strips all HTML.
func NewStrictHTMLSanitizer() *HTMLSanitizer {
	return &HTMLSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize applies the policy to markup
func (s *HTMLSanitizer) Sanitize(markup string) string {
	return s.policy.Sanitize(markup)
}

var strict = NewStrictHTMLSanitizer()

// PlainText strips every tag from markup and decodes entities, leaving the
// visible text with surrounding whitespace trimmed.
func PlainText(markup string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(markup)))
}
