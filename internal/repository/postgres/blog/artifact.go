package blog

import (
	"context"
	"fmt"

	"folio/internal/domain"
	blogRepo "folio/internal/domain/repositories/blog"
	"folio/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresArtifactRepository implements the ArtifactRepository interface
type PostgresArtifactRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewArtifactRepository creates a new artifact repository
func NewArtifactRepository(config *postgres.RepositoryConfig) blogRepo.ArtifactRepository {
	return &PostgresArtifactRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresArtifactRepository) Get(ctx context.Context, id string) (string, error) {
	query := fmt.Sprintf(`SELECT content FROM %s WHERE id = $1`, r.tables.Artifacts)

	var content string
	if err := r.pool.QueryRow(ctx, query, id).Scan(&content); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return "", fmt.Errorf("artifact %s: %w", id, domain.ErrNotFound)
		}
		return "", fmt.Errorf("get artifact: %w", err)
	}
	return content, nil
}

func (r *PostgresArtifactRepository) Put(ctx context.Context, id, content string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, content, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET content = EXCLUDED.content, updated_at = now()
	`, r.tables.Artifacts)

	if _, err := r.pool.Exec(ctx, query, id, content); err != nil {
		return fmt.Errorf("upsert artifact: %w", err)
	}
	return nil
}

func (r *PostgresArtifactRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Artifacts)
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete artifact: %w", err)
	}
	return nil
}

func (r *PostgresArtifactRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, r.tables.Artifacts)

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check artifact: %w", err)
	}
	return exists, nil
}

func (r *PostgresArtifactRepository) List(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT id FROM %s ORDER BY id`, r.tables.Artifacts)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect artifact ids: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
