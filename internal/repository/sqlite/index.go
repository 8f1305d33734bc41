package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"folio/internal/domain"
	models "folio/internal/domain/models/blog"
	blogRepo "folio/internal/domain/repositories/blog"
)

// IndexRepository stores index entries in the posts table. seq preserves
// first-insertion order; updates keep the original position.
type IndexRepository struct {
	db *sql.DB
}

// NewIndexRepository creates an index repository on d
func NewIndexRepository(d *DB) blogRepo.IndexRepository {
	return &IndexRepository{db: d.db}
}

func (r *IndexRepository) List(ctx context.Context) ([]models.IndexEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, authors, date, thumbnail FROM posts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	entries := []models.IndexEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return entries, nil
}

func (r *IndexRepository) Get(ctx context.Context, id string) (*models.IndexEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, title, authors, date, thumbnail FROM posts WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("index entry %s: %w", id, domain.ErrNotFound)
	}
	return entry, err
}

func (r *IndexRepository) Put(ctx context.Context, entry models.IndexEntry) error {
	authors := entry.Authors
	if authors == nil {
		authors = []string{}
	}
	encoded, err := json.Marshal(authors)
	if err != nil {
		return fmt.Errorf("encode authors: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO posts(id, title, authors, date, thumbnail)
        VALUES(?,?,?,?,?)
        ON CONFLICT(id) DO UPDATE SET title=excluded.title, authors=excluded.authors, date=excluded.date, thumbnail=excluded.thumbnail`,
		entry.ID, entry.Title, string(encoded), entry.Date, entry.Thumbnail)
	if err != nil {
		return fmt.Errorf("upsert post %s: %w", entry.ID, err)
	}
	return nil
}

func (r *IndexRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*models.IndexEntry, error) {
	var entry models.IndexEntry
	var authors string
	if err := s.Scan(&entry.ID, &entry.Title, &authors, &entry.Date, &entry.Thumbnail); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}
	if err := json.Unmarshal([]byte(authors), &entry.Authors); err != nil {
		return nil, fmt.Errorf("decode authors of %s: %w", entry.ID, err)
	}
	if entry.Authors == nil {
		entry.Authors = []string{}
	}
	return &entry, nil
}
