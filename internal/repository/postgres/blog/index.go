package blog

import (
	"context"
	"fmt"
	"log/slog"

	"folio/internal/domain"
	models "folio/internal/domain/models/blog"
	blogRepo "folio/internal/domain/repositories/blog"
	"folio/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresIndexRepository implements the IndexRepository interface
type PostgresIndexRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewIndexRepository creates a new index repository
func NewIndexRepository(config *postgres.RepositoryConfig) blogRepo.IndexRepository {
	return &PostgresIndexRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// List returns entries in first-insertion order
func (r *PostgresIndexRepository) List(ctx context.Context) ([]models.IndexEntry, error) {
	query := fmt.Sprintf(`
		SELECT id, title, authors, date, thumbnail
		FROM %s
		ORDER BY seq
	`, r.tables.Posts)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	entries := []models.IndexEntry{}
	for rows.Next() {
		var e models.IndexEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Authors, &e.Date, &e.Thumbnail); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		if e.Authors == nil {
			e.Authors = []string{}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	return entries, nil
}

// Get retrieves an entry by document id
func (r *PostgresIndexRepository) Get(ctx context.Context, id string) (*models.IndexEntry, error) {
	query := fmt.Sprintf(`
		SELECT id, title, authors, date, thumbnail
		FROM %s
		WHERE id = $1
	`, r.tables.Posts)

	var e models.IndexEntry
	err := r.pool.QueryRow(ctx, query, id).Scan(&e.ID, &e.Title, &e.Authors, &e.Date, &e.Thumbnail)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("index entry %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	if e.Authors == nil {
		e.Authors = []string{}
	}

	return &e, nil
}

// Put upserts an entry; an existing row keeps its position
func (r *PostgresIndexRepository) Put(ctx context.Context, entry models.IndexEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, authors, date, thumbnail)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title,
			authors = EXCLUDED.authors,
			date = EXCLUDED.date,
			thumbnail = EXCLUDED.thumbnail
	`, r.tables.Posts)

	authors := entry.Authors
	if authors == nil {
		authors = []string{}
	}

	if _, err := r.pool.Exec(ctx, query, entry.ID, entry.Title, authors, entry.Date, entry.Thumbnail); err != nil {
		return fmt.Errorf("upsert post: %w", err)
	}
	return nil
}

// Delete removes an entry; unknown ids are ignored
func (r *PostgresIndexRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Posts)

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Debug("delete of unknown index entry", "doc_id", id)
	}
	return nil
}
