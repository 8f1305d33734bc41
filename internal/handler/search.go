package handler

import (
	"log/slog"
	"net/http"

	blogSvc "folio/internal/domain/services/blog"
	"folio/internal/httputil"
)

// SearchHandler serves full-text search over published posts
type SearchHandler struct {
	searchService blogSvc.SearchService
	logger        *slog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService blogSvc.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// SearchResponse wraps search hits
type SearchResponse struct {
	Query string              `json:"query"`
	Hits  []blogSvc.SearchHit `json:"hits"`
	Total int                 `json:"total"`
}

// Search runs a query against the search index.
// GET /api/search?q=&limit=
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit, err := httputil.QueryInt(r, "limit", 0)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	hits, err := h.searchService.SearchDocuments(r.Context(), query, limit)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	if hits == nil {
		hits = []blogSvc.SearchHit{}
	}

	httputil.RespondJSON(w, http.StatusOK, SearchResponse{
		Query: query,
		Hits:  hits,
		Total: len(hits),
	})
}
