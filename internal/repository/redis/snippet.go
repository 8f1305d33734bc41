// Package redis keeps the snippet store in a Redis hash, for deployments
// where listing pages read excerpts from a shared cache.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"folio/internal/domain"
	blogRepo "folio/internal/domain/repositories/blog"
)

// NewClient creates a Redis client and verifies the connection
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// SnippetRepository stores snippets as fields of a single hash
type SnippetRepository struct {
	client redis.Cmdable
	key    string
}

// NewSnippetRepository creates a snippet store in the hash named key
func NewSnippetRepository(client redis.Cmdable, key string) blogRepo.SnippetRepository {
	return &SnippetRepository{client: client, key: key}
}

func (r *SnippetRepository) Get(ctx context.Context, id string) (string, error) {
	snippet, err := r.client.HGet(ctx, r.key, id).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("snippet %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("hget snippet %s: %w", id, err)
	}
	return snippet, nil
}

func (r *SnippetRepository) Put(ctx context.Context, id, snippet string) error {
	if err := r.client.HSet(ctx, r.key, id, snippet).Err(); err != nil {
		return fmt.Errorf("hset snippet %s: %w", id, err)
	}
	return nil
}

func (r *SnippetRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.HDel(ctx, r.key, id).Err(); err != nil {
		return fmt.Errorf("hdel snippet %s: %w", id, err)
	}
	return nil
}

func (r *SnippetRepository) All(ctx context.Context) (map[string]string, error) {
	snippets, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall snippets: %w", err)
	}
	return snippets, nil
}
