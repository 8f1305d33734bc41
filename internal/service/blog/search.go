package blog

import (
	"context"
	"errors"
	"log/slog"

	"folio/internal/config"
	"folio/internal/domain"
	blogRepo "folio/internal/domain/repositories/blog"
	blogSvc "folio/internal/domain/services/blog"
	"folio/internal/search"
)

type searchService struct {
	index    blogRepo.IndexRepository
	snippets blogRepo.SnippetRepository
	search   blogSvc.SearchIndex
	logger   *slog.Logger
}

// NewSearchService creates a search service. searchIndex may be nil, in
// which case every query is rejected.
func NewSearchService(
	index blogRepo.IndexRepository,
	snippets blogRepo.SnippetRepository,
	searchIndex blogSvc.SearchIndex,
	logger *slog.Logger,
) blogSvc.SearchService {
	return &searchService{
		index:    index,
		snippets: snippets,
		search:   searchIndex,
		logger:   logger,
	}
}

func (s *searchService) SearchDocuments(ctx context.Context, query string, limit int) ([]blogSvc.SearchHit, error) {
	if s.search == nil {
		return nil, &domain.ValidationError{Message: "search is not enabled"}
	}

	switch {
	case limit <= 0:
		limit = config.DefaultSearchLimit
	case limit > config.MaxSearchLimit:
		limit = config.MaxSearchLimit
	}

	hits, err := s.search.Search(query, limit)
	if err != nil {
		if errors.Is(err, search.ErrInvalidQuery) {
			return nil, &domain.ValidationError{Field: "q", Message: err.Error()}
		}
		return nil, err
	}
	return hits, nil
}

func (s *searchService) Reindex(ctx context.Context) (int, error) {
	if s.search == nil {
		return 0, &domain.ValidationError{Message: "search is not enabled"}
	}

	entries, err := s.index.List(ctx)
	if err != nil {
		return 0, domain.NewStorageError(storeIndex, "list", "", err)
	}
	snippets, err := s.snippets.All(ctx)
	if err != nil {
		return 0, domain.NewStorageError(storeSnippet, "list", "", err)
	}

	if err := s.search.Rebuild(entries, snippets); err != nil {
		return 0, err
	}

	s.logger.Info("search index rebuilt", "documents", len(entries))
	return len(entries), nil
}
