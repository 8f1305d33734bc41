package flatfile

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"folio/internal/domain"
	models "folio/internal/domain/models/blog"
	blogRepo "folio/internal/domain/repositories/blog"
)

// indexRecord is the on-disk shape of an index entry. The id is stored
// under "fileName" because the public listing page links posts by it.
type indexRecord struct {
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Date      string   `json:"date"`
	FileName  string   `json:"fileName"`
	Thumbnail string   `json:"thumbnail"`
}

// IndexRepository keeps the index as a JSON list in a single file
type IndexRepository struct {
	path string
	mu   sync.Mutex // serializes read-modify-write of the file
}

// NewIndexRepository creates an index backed by the JSON file at path
func NewIndexRepository(path string) blogRepo.IndexRepository {
	return &IndexRepository{path: path}
}

func (r *IndexRepository) List(ctx context.Context) ([]models.IndexEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}

	entries := make([]models.IndexEntry, len(records))
	for i, rec := range records {
		entries[i] = rec.entry()
	}
	return entries, nil
}

func (r *IndexRepository) Get(ctx context.Context, id string) (*models.IndexEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.FileName == id {
			entry := rec.entry()
			return &entry, nil
		}
	}
	return nil, fmt.Errorf("index entry %s: %w", id, domain.ErrNotFound)
}

func (r *IndexRepository) Put(ctx context.Context, entry models.IndexEntry) error {
	if err := checkID(entry.ID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}

	rec := newIndexRecord(entry)
	replaced := false
	for i := range records {
		if records[i].FileName == entry.ID {
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}

	return writeJSON(r.path, records)
}

func (r *IndexRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, rec := range records {
		if rec.FileName != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return nil
	}

	return writeJSON(r.path, kept)
}

func (r *IndexRepository) load() ([]indexRecord, error) {
	data, err := readFile(r.path)
	if err != nil || data == nil {
		return []indexRecord{}, err
	}

	var records []indexRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	if records == nil {
		records = []indexRecord{}
	}
	return records, nil
}

func newIndexRecord(e models.IndexEntry) indexRecord {
	authors := e.Authors
	if authors == nil {
		authors = []string{}
	}
	return indexRecord{
		Title:     e.Title,
		Authors:   authors,
		Date:      e.Date,
		FileName:  e.ID,
		Thumbnail: e.Thumbnail,
	}
}

func (rec indexRecord) entry() models.IndexEntry {
	authors := rec.Authors
	if authors == nil {
		authors = []string{}
	}
	return models.IndexEntry{
		ID:        rec.FileName,
		Title:     rec.Title,
		Authors:   authors,
		Date:      rec.Date,
		Thumbnail: rec.Thumbnail,
	}
}
