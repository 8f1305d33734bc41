package export

import (
	"context"

	blogSvc "folio/internal/domain/services/blog"
)

// htmlExporter returns the published markup as-is
type htmlExporter struct{}

// NewHTMLExporter creates the passthrough exporter
func NewHTMLExporter() blogSvc.Exporter {
	return &htmlExporter{}
}

func (e *htmlExporter) Export(ctx context.Context, markup string) (string, error) {
	return markup, nil
}

func (e *htmlExporter) Format() string      { return "html" }
func (e *htmlExporter) ContentType() string { return "text/html; charset=utf-8" }
