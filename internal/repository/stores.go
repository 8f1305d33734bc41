// Package repository selects and opens the configured store backends.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"folio/internal/config"
	blogRepo "folio/internal/domain/repositories/blog"
	"folio/internal/repository/flatfile"
	"folio/internal/repository/postgres"
	postgresBlog "folio/internal/repository/postgres/blog"
	redisRepo "folio/internal/repository/redis"
	"folio/internal/repository/sqlite"
)

// Stores bundles the repositories the document service writes to
type Stores struct {
	Index     blogRepo.IndexRepository
	Snippets  blogRepo.SnippetRepository
	Artifacts blogRepo.ArtifactRepository
	Uploads   blogRepo.UploadStore

	closers []func() error
}

// Close releases database pools and clients
func (s *Stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

// Open builds the stores selected by cfg. Uploads always land in
// cfg.UploadDir since every backend serves media as static files.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Stores, error) {
	s := &Stores{
		Uploads: flatfile.NewUploadStore(cfg.UploadDir, cfg.UploadURLPrefix),
	}

	switch cfg.StoreBackend {
	case config.BackendFlatFile:
		s.Index = flatfile.NewIndexRepository(cfg.IndexFile)
		s.Snippets = flatfile.NewSnippetRepository(cfg.SnippetsFile)
		s.Artifacts = flatfile.NewArtifactRepository(cfg.ArtifactDir)
		logger.Info("flat-file stores ready",
			"index_file", cfg.IndexFile,
			"snippets_file", cfg.SnippetsFile,
			"artifact_dir", cfg.ArtifactDir,
		)

	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, db.Close)
		s.Index = sqlite.NewIndexRepository(db)
		s.Snippets = sqlite.NewSnippetRepository(db)
		s.Artifacts = sqlite.NewArtifactRepository(db)
		logger.Info("sqlite stores ready", "path", cfg.SQLitePath)

	case config.BackendPostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() error { pool.Close(); return nil })

		tables := postgres.NewTableNames(cfg.TablePrefix)
		if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
			s.Close()
			return nil, err
		}

		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: tables,
			Logger: logger,
		}
		s.Index = postgresBlog.NewIndexRepository(repoConfig)
		s.Snippets = postgresBlog.NewSnippetRepository(repoConfig)
		s.Artifacts = postgresBlog.NewArtifactRepository(repoConfig)
		logger.Info("postgres stores ready", "table_prefix", cfg.TablePrefix)

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	if cfg.SnippetBackend == config.BackendRedis {
		client, err := redisRepo.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, client.Close)
		s.Snippets = redisRepo.NewSnippetRepository(client, cfg.RedisKey)
		logger.Info("redis snippet store ready", "addr", cfg.RedisAddr, "key", cfg.RedisKey)
	}

	return s, nil
}
