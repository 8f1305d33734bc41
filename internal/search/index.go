// Package search keeps a Bleve full-text index over published posts.
package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	models "folio/internal/domain/models/blog"
	blogSvc "folio/internal/domain/services/blog"
)

// ErrInvalidQuery is returned when a query string cannot be parsed
var ErrInvalidQuery = errors.New("invalid search query")

// Index wraps a Bleve search index
type Index struct {
	index bleve.Index
}

// indexedDocument is the shape stored in Bleve
type indexedDocument struct {
	ID      string
	Title   string
	Authors string
	Date    string
	Snippet string
}

// Open opens or creates a Bleve index at path
func Open(path string) (*Index, error) {
	idx, err := bleve.Open(path)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		idx, err = bleve.New(path, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	return &Index{index: idx}, nil
}

// NewMemOnly creates an index held entirely in memory
func NewMemOnly() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create in-memory index: %w", err)
	}
	return &Index{index: idx}, nil
}

// buildIndexMapping analyzes titles and snippets as English text
func buildIndexMapping() mapping.IndexMapping {
	englishText := bleve.NewTextFieldMapping()
	englishText.Analyzer = "en"

	keyword := bleve.NewTextFieldMapping()
	keyword.Analyzer = "keyword"

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("ID", keyword)
	docMapping.AddFieldMappingsAt("Title", englishText)
	docMapping.AddFieldMappingsAt("Authors", bleve.NewTextFieldMapping())
	docMapping.AddFieldMappingsAt("Date", bleve.NewTextFieldMapping())
	docMapping.AddFieldMappingsAt("Snippet", englishText)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	// Unqualified queries hit the composite field, which must stem the same way
	indexMapping.DefaultAnalyzer = "en"

	return indexMapping
}

// Close closes the index
func (i *Index) Close() error {
	return i.index.Close()
}

// IndexDocument adds or replaces a post in the index
func (i *Index) IndexDocument(entry models.IndexEntry, snippet string) error {
	return i.index.Index(entry.ID, newIndexedDocument(entry, snippet))
}

// Delete removes a post from the index
func (i *Index) Delete(id string) error {
	return i.index.Delete(id)
}

// Search runs a query string query (quotes, +/- operators, field:term)
// with highlighted fragments
func (i *Index) Search(queryStr string, limit int) ([]blogSvc.SearchHit, error) {
	queryStr = strings.TrimSpace(queryStr)
	if queryStr == "" {
		return []blogSvc.SearchHit{}, nil
	}

	query := bleve.NewQueryStringQuery(queryStr)
	if _, err := query.Parse(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	req := bleve.NewSearchRequestOptions(query, limit, 0, false)
	req.Highlight = bleve.NewHighlightWithStyle("html")
	req.Fields = []string{"Title", "Authors"}

	results, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]blogSvc.SearchHit, 0, len(results.Hits))
	for _, hit := range results.Hits {
		h := blogSvc.SearchHit{
			ID:        hit.ID,
			Score:     hit.Score,
			Fragments: hit.Fragments,
		}
		if title, ok := hit.Fields["Title"].(string); ok {
			h.Title = title
		}
		if authors, ok := hit.Fields["Authors"].(string); ok {
			h.Authors = authors
		}
		hits = append(hits, h)
	}

	return hits, nil
}

// Rebuild replaces the index contents with entries in one batch
func (i *Index) Rebuild(entries []models.IndexEntry, snippets map[string]string) error {
	stale, err := i.allIDs()
	if err != nil {
		return err
	}

	batch := i.index.NewBatch()
	for _, id := range stale {
		batch.Delete(id)
	}
	for _, entry := range entries {
		if err := batch.Index(entry.ID, newIndexedDocument(entry, snippets[entry.ID])); err != nil {
			return fmt.Errorf("batch index %s: %w", entry.ID, err)
		}
	}

	if err := i.index.Batch(batch); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// Count returns the number of documents in the index
func (i *Index) Count() (uint64, error) {
	return i.index.DocCount()
}

func (i *Index) allIDs() ([]string, error) {
	count, err := i.index.DocCount()
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), int(count), 0, false)
	results, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	ids := make([]string, 0, len(results.Hits))
	for _, hit := range results.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

func newIndexedDocument(entry models.IndexEntry, snippet string) *indexedDocument {
	return &indexedDocument{
		ID:      entry.ID,
		Title:   entry.Title,
		Authors: strings.Join(entry.Authors, ", "),
		Date:    entry.Date,
		Snippet: snippet,
	}
}

var _ blogSvc.SearchIndex = (*Index)(nil)
