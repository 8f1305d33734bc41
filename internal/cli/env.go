package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"

	"folio/internal/blocktypes"
	"folio/internal/config"
	blogSvc "folio/internal/domain/services/blog"
	"folio/internal/repository"
	"folio/internal/search"
	serviceBlog "folio/internal/service/blog"
	"folio/internal/service/blog/export"
)

// Services are the operations commands run against
type Services struct {
	Docs      blogSvc.DocumentService
	Search    blogSvc.SearchService
	Reconcile blogSvc.ReconcileService
	Blocks    *blocktypes.Registry
	Logger    *slog.Logger

	close func() error
}

// Close releases stores and the search index
func (s *Services) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Env carries the output streams and the lazily opened services
type Env struct {
	Stdout io.Writer
	Stderr io.Writer

	// Open builds the services. Replaced in tests.
	Open func(ctx context.Context) (*Services, error)

	services *Services
}

// Services opens the services on first use
func (e *Env) Services(ctx context.Context) (*Services, error) {
	if e.services != nil {
		return e.services, nil
	}
	svc, err := e.Open(ctx)
	if err != nil {
		return nil, err
	}
	e.services = svc
	return svc, nil
}

// Close releases whatever Services opened
func (e *Env) Close() error {
	if e.services == nil {
		return nil
	}
	return e.services.Close()
}

// OpenFromConfig loads configuration (optionally from envFile) and opens
// the configured stores. Logs go to stderr so stdout stays parseable.
func OpenFromConfig(envFile string, stderr io.Writer) func(ctx context.Context) (*Services, error) {
	return func(ctx context.Context) (*Services, error) {
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("load env file: %w", err)
			}
		} else {
			_ = godotenv.Load()
		}

		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}

		logger, closeLog, err := config.NewLogger(cfg, "folioctl", stderr)
		if err != nil {
			return nil, err
		}

		stores, err := repository.Open(ctx, cfg, logger)
		if err != nil {
			closeLog()
			return nil, err
		}

		var idx *search.Index
		if cfg.SearchIndexPath != "" {
			idx, err = search.Open(cfg.SearchIndexPath)
		} else {
			idx, err = search.NewMemOnly()
		}
		if err != nil {
			stores.Close()
			closeLog()
			return nil, fmt.Errorf("open search index: %w", err)
		}

		blocks, err := blocktypes.NewRegistry()
		if err != nil {
			idx.Close()
			stores.Close()
			closeLog()
			return nil, err
		}

		return &Services{
			Docs: serviceBlog.NewDocumentService(
				stores.Index, stores.Snippets, stores.Artifacts, stores.Uploads,
				idx, export.NewRegistry(), logger,
			),
			Search:    serviceBlog.NewSearchService(stores.Index, stores.Snippets, idx, logger),
			Reconcile: serviceBlog.NewReconcileService(stores.Index, stores.Snippets, stores.Artifacts, logger),
			Blocks:    blocks,
			Logger:    logger,
			close: func() error {
				err := errors.Join(idx.Close(), stores.Close())
				closeLog()
				return err
			},
		}, nil
	}
}
