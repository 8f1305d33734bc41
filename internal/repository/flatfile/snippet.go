package flatfile

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"folio/internal/domain"
	blogRepo "folio/internal/domain/repositories/blog"
)

// SnippetRepository keeps snippets as a JSON object in a single file
type SnippetRepository struct {
	path string
	mu   sync.Mutex
}

// NewSnippetRepository creates a snippet store backed by the JSON file at path
func NewSnippetRepository(path string) blogRepo.SnippetRepository {
	return &SnippetRepository{path: path}
}

func (r *SnippetRepository) Get(ctx context.Context, id string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snippets, err := r.load()
	if err != nil {
		return "", err
	}

	snippet, ok := snippets[id]
	if !ok {
		return "", fmt.Errorf("snippet %s: %w", id, domain.ErrNotFound)
	}
	return snippet, nil
}

func (r *SnippetRepository) Put(ctx context.Context, id, snippet string) error {
	if err := checkID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snippets, err := r.load()
	if err != nil {
		return err
	}

	snippets[id] = snippet
	return writeJSON(r.path, snippets)
}

func (r *SnippetRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snippets, err := r.load()
	if err != nil {
		return err
	}

	if _, ok := snippets[id]; !ok {
		return nil
	}
	delete(snippets, id)
	return writeJSON(r.path, snippets)
}

func (r *SnippetRepository) All(ctx context.Context) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

func (r *SnippetRepository) load() (map[string]string, error) {
	snippets := map[string]string{}

	data, err := readFile(r.path)
	if err != nil || data == nil || isEmptyJSONList(data) {
		return snippets, err
	}

	if err := json.Unmarshal(data, &snippets); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	if snippets == nil {
		snippets = map[string]string{}
	}
	return snippets, nil
}
