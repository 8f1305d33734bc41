package blog

import (
	"context"

	models "folio/internal/domain/models/blog"
)

// SearchIndex is a full-text index over index entries and their snippets.
// It is kept in step with saves and deletes on a best-effort basis and can
// always be rebuilt from the stores.
type SearchIndex interface {
	IndexDocument(entry models.IndexEntry, snippet string) error
	Delete(id string) error
	Search(query string, limit int) ([]SearchHit, error)
	Rebuild(entries []models.IndexEntry, snippets map[string]string) error
}

// SearchHit is one ranked search result
type SearchHit struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Authors   string              `json:"authors"`
	Score     float64             `json:"score"`
	Fragments map[string][]string `json:"fragments,omitempty"` // Highlighted excerpts per field
}

// SearchService exposes the search index to callers
type SearchService interface {
	// SearchDocuments runs query against the index. limit <= 0 selects the
	// default page size.
	SearchDocuments(ctx context.Context, query string, limit int) ([]SearchHit, error)

	// Reindex rebuilds the search index from the index and snippet stores
	Reindex(ctx context.Context) (int, error)
}
