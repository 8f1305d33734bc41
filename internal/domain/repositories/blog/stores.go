package blog

import (
	"context"
	"io"

	models "folio/internal/domain/models/blog"
)

// IndexRepository stores the ordered list of published document records.
// Get returns domain.ErrNotFound for an unknown id.
type IndexRepository interface {
	// List returns every entry in stored order
	List(ctx context.Context) ([]models.IndexEntry, error)

	// Get retrieves the entry for id
	Get(ctx context.Context, id string) (*models.IndexEntry, error)

	// Put replaces the entry with the same id in place, or appends it
	Put(ctx context.Context, entry models.IndexEntry) error

	// Delete removes the entry for id. Deleting an unknown id is a no-op.
	Delete(ctx context.Context, id string) error
}

// SnippetRepository maps document ids to plain-text excerpts.
// Get returns domain.ErrNotFound for an unknown id.
type SnippetRepository interface {
	Get(ctx context.Context, id string) (string, error)

	// Put overwrites the snippet for id
	Put(ctx context.Context, id, snippet string) error

	// Delete removes the snippet for id. Deleting an unknown id is a no-op.
	Delete(ctx context.Context, id string) error

	// All returns every stored snippet keyed by document id
	All(ctx context.Context) (map[string]string, error)
}

// ArtifactRepository stores one rendered artifact (markup plus trailer) per
// document id. Get returns domain.ErrNotFound for an unknown id.
type ArtifactRepository interface {
	Get(ctx context.Context, id string) (string, error)

	// Put overwrites the artifact for id
	Put(ctx context.Context, id, content string) error

	// Delete removes the artifact for id. Deleting an unknown id is a no-op.
	Delete(ctx context.Context, id string) error

	// Exists reports whether an artifact is stored for id
	Exists(ctx context.Context, id string) (bool, error)

	// List returns the ids of all stored artifacts, sorted
	List(ctx context.Context) ([]string, error)
}

// UploadStore persists uploaded media and returns a durable URL for it
type UploadStore interface {
	Store(ctx context.Context, filename string, r io.Reader) (string, error)
}
