package export

import (
	"context"
	"regexp"
	"strings"

	blogSvc "folio/internal/domain/services/blog"
	"folio/internal/service/blog/sanitizer"
)

// blockBoundary matches closing tags that end a visual block, so the plain
// text keeps one block per paragraph
var blockBoundary = regexp.MustCompile(`(?i)</(h[1-6]|p|pre|figure|figcaption|div)>|<br\s*/?>`)

var blankLines = regexp.MustCompile(`\n{3,}`)

// textExporter strips all markup
type textExporter struct{}

// NewTextExporter creates the plain-text exporter
func NewTextExporter() blogSvc.Exporter {
	return &textExporter{}
}

func (e *textExporter) Export(ctx context.Context, markup string) (string, error) {
	spaced := blockBoundary.ReplaceAllStringFunc(markup, func(tag string) string {
		return tag + "\n"
	})

	lines := strings.Split(sanitizer.PlainText(spaced), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	text := blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text), nil
}

func (e *textExporter) Format() string      { return "text" }
func (e *textExporter) ContentType() string { return "text/plain; charset=utf-8" }
