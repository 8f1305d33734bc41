package export

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"folio/internal/domain"
	blogSvc "folio/internal/domain/services/blog"
)

// Registry routes export requests to a converter by format name.
//
// Thread-safe for concurrent access.
type Registry struct {
	mu        sync.RWMutex
	exporters map[string]blogSvc.Exporter // key: lowercase format name
}

// NewRegistry creates a registry with the html, markdown and text
// exporters pre-registered.
func NewRegistry() *Registry {
	registry := &Registry{
		exporters: make(map[string]blogSvc.Exporter),
	}

	registry.Register(NewHTMLExporter())
	registry.Register(NewMarkdownExporter())
	registry.Register(NewTextExporter())

	return registry
}

// Register adds an exporter under its format name, replacing any previous
// exporter for that format.
func (r *Registry) Register(exporter blogSvc.Exporter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exporters[strings.ToLower(exporter.Format())] = exporter
}

// Get retrieves the exporter for format. Lookup is case-insensitive.
// Returns nil if none is registered.
func (r *Registry) Get(format string) blogSvc.Exporter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.exporters[strings.ToLower(format)]
}

// Export converts markup to format. An unknown format is a validation error.
func (r *Registry) Export(ctx context.Context, format, markup string) (string, blogSvc.Exporter, error) {
	exporter := r.Get(format)
	if exporter == nil {
		return "", nil, &domain.ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unsupported export format %q (supported: %s)", format, strings.Join(r.Formats(), ", ")),
		}
	}

	body, err := exporter.Export(ctx, markup)
	if err != nil {
		return "", nil, fmt.Errorf("export %s: %w", exporter.Format(), err)
	}
	return body, exporter, nil
}

// Formats returns all registered format names, sorted.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.exporters))
	for format := range r.exporters {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}
