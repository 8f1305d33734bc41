package blog

import (
	"context"
	"fmt"

	"folio/internal/domain"
	blogRepo "folio/internal/domain/repositories/blog"
	"folio/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSnippetRepository implements the SnippetRepository interface
type PostgresSnippetRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewSnippetRepository creates a new snippet repository
func NewSnippetRepository(config *postgres.RepositoryConfig) blogRepo.SnippetRepository {
	return &PostgresSnippetRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresSnippetRepository) Get(ctx context.Context, id string) (string, error) {
	query := fmt.Sprintf(`SELECT snippet FROM %s WHERE id = $1`, r.tables.Snippets)

	var snippet string
	if err := r.pool.QueryRow(ctx, query, id).Scan(&snippet); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return "", fmt.Errorf("snippet %s: %w", id, domain.ErrNotFound)
		}
		return "", fmt.Errorf("get snippet: %w", err)
	}
	return snippet, nil
}

func (r *PostgresSnippetRepository) Put(ctx context.Context, id, snippet string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, snippet) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET snippet = EXCLUDED.snippet
	`, r.tables.Snippets)

	if _, err := r.pool.Exec(ctx, query, id, snippet); err != nil {
		return fmt.Errorf("upsert snippet: %w", err)
	}
	return nil
}

func (r *PostgresSnippetRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Snippets)
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete snippet: %w", err)
	}
	return nil
}

func (r *PostgresSnippetRepository) All(ctx context.Context) (map[string]string, error) {
	query := fmt.Sprintf(`SELECT id, snippet FROM %s`, r.tables.Snippets)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list snippets: %w", err)
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
	return out, rows.Err()
}
