package handler

import (
	"log/slog"
	"net/http"

	"docvault/internal/categories"
	"docvault/internal/httputil"
)

// CategoryHandler serves the fixed category registry
type CategoryHandler struct {
	registry *categories.Registry
	logger   *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(registry *categories.Registry, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		registry: registry,
		logger:   logger,
	}
}

// ListCategories returns the registered document categories in order
// GET /api/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": h.registry.List(),
	})
}
