package handler

import (
	"log/slog"
	"net/http"

	blogSvc "folio/internal/domain/services/blog"
	"folio/internal/httputil"
)

// AdminHandler exposes maintenance operations
type AdminHandler struct {
	reconcileService blogSvc.ReconcileService
	searchService    blogSvc.SearchService
	logger           *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(reconcileService blogSvc.ReconcileService, searchService blogSvc.SearchService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		reconcileService: reconcileService,
		searchService:    searchService,
		logger:           logger,
	}
}

// Reconcile repairs drift between the stores.
// POST /api/admin/reconcile
//
// Query parameters:
//   - dry_run: report without writing (default false)
//   - prune: drop index entries whose artifact is gone
//   - rerender: rewrite artifacts from their stored blocks
func (h *AdminHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	opts := blogSvc.ReconcileOptions{
		DryRun:   httputil.QueryBool(r, "dry_run", false),
		Prune:    httputil.QueryBool(r, "prune", false),
		Rerender: httputil.QueryBool(r, "rerender", false),
	}

	report, err := h.reconcileService.Reconcile(r.Context(), opts)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if !opts.DryRun && h.searchService != nil {
		if _, err := h.searchService.Reindex(r.Context()); err != nil {
			h.logger.Warn("reindex after reconcile failed", "error", err)
		}
	}

	httputil.RespondJSON(w, http.StatusOK, report)
}

// Reindex rebuilds the search index from the stores.
// POST /api/admin/reindex
func (h *AdminHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	n, err := h.searchService.Reindex(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"indexed": n})
}
