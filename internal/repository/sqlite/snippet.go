package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"folio/internal/domain"
	blogRepo "folio/internal/domain/repositories/blog"
)

// SnippetRepository stores snippets in the snippets table
type SnippetRepository struct {
	db *sql.DB
}

// NewSnippetRepository creates a snippet repository on d
func NewSnippetRepository(d *DB) blogRepo.SnippetRepository {
	return &SnippetRepository{db: d.db}
}

func (r *SnippetRepository) Get(ctx context.Context, id string) (string, error) {
	var snippet string
	err := r.db.QueryRowContext(ctx, `SELECT snippet FROM snippets WHERE id = ?`, id).Scan(&snippet)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("snippet %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get snippet %s: %w", id, err)
	}
	return snippet, nil
}

func (r *SnippetRepository) Put(ctx context.Context, id, snippet string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO snippets(id, snippet) VALUES(?,?)
        ON CONFLICT(id) DO UPDATE SET snippet=excluded.snippet`, id, snippet)
	if err != nil {
		return fmt.Errorf("upsert snippet %s: %w", id, err)
	}
	return nil
}

func (r *SnippetRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM snippets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete snippet %s: %w", id, err)
	}
	return nil
}

func (r *SnippetRepository) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, snippet FROM snippets`)
	if err != nil {
		return nil, fmt.Errorf("query snippets: %w", err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var id, snippet string
		if err := rows.Scan(&id, &snippet); err != nil {
			return nil, fmt.Errorf("scan snippet: %w", err)
		}
		out[id] = snippet
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snippets: %w", err)
	}
	return out, nil
}
