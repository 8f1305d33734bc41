package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"folio/internal/domain"
	blogRepo "folio/internal/domain/repositories/blog"
)

// ArtifactRepository stores rendered artifacts in the artifacts table
type ArtifactRepository struct {
	db *sql.DB
}

// NewArtifactRepository creates an artifact repository on d
func NewArtifactRepository(d *DB) blogRepo.ArtifactRepository {
	return &ArtifactRepository{db: d.db}
}

func (r *ArtifactRepository) Get(ctx context.Context, id string) (string, error) {
	var content string
	err := r.db.QueryRowContext(ctx, `SELECT content FROM artifacts WHERE id = ?`, id).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("artifact %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get artifact %s: %w", id, err)
	}
	return content, nil
}

func (r *ArtifactRepository) Put(ctx context.Context, id, content string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO artifacts(id, content, updated_at) VALUES(?,?,?)
        ON CONFLICT(id) DO UPDATE SET content=excluded.content, updated_at=excluded.updated_at`,
		id, content, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert artifact %s: %w", id, err)
	}
	return nil
}

func (r *ArtifactRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM artifacts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete artifact %s: %w", id, err)
	}
	return nil
}

func (r *ArtifactRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM artifacts WHERE id = ?`, id).Scan(&n); err != nil {
		return false, fmt.Errorf("count artifact %s: %w", id, err)
	}
	return n > 0, nil
}

func (r *ArtifactRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM artifacts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query artifacts: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan artifact id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artifacts: %w", err)
	}
	return ids, nil
}
