package export

import (
	"context"
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"

	blogSvc "folio/internal/domain/services/blog"
	"folio/internal/service/blog/sanitizer"
)

// markdownExporter converts published markup to Markdown in two stages:
// sanitize (the paragraph text is authored unescaped), then convert.
type markdownExporter struct {
	sanitizer *sanitizer.HTMLSanitizer
	converter *md.Converter
}

// NewMarkdownExporter creates the Markdown exporter
func NewMarkdownExporter() blogSvc.Exporter {
	return &markdownExporter{
		sanitizer: sanitizer.NewHTMLSanitizer(),
		converter: md.NewConverter("", true, nil),
	}
}

func (e *markdownExporter) Export(ctx context.Context, markup string) (string, error) {
	markdown, err := e.converter.ConvertString(e.sanitizer.Sanitize(markup))
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}
	return markdown, nil
}

func (e *markdownExporter) Format() string      { return "markdown" }
func (e *markdownExporter) ContentType() string { return "text/markdown; charset=utf-8" }
