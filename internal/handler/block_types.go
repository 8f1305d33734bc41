package handler

import (
	"log/slog"
	"net/http"

	"folio/internal/blocktypes"
	"folio/internal/httputil"
)

// BlockTypeHandler serves the editor palette
type BlockTypeHandler struct {
	registry *blocktypes.Registry
	logger   *slog.Logger
}

// NewBlockTypeHandler creates a new block type handler
func NewBlockTypeHandler(registry *blocktypes.Registry, logger *slog.Logger) *BlockTypeHandler {
	return &BlockTypeHandler{
		registry: registry,
		logger:   logger,
	}
}

// ListBlockTypes returns every block type with its default content.
// GET /api/block-types
func (h *BlockTypeHandler) ListBlockTypes(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.registry.List())
}
