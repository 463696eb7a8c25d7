package handler

import (
	"log/slog"
	"net/http"

	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// SyncHandler serves full snapshots for client-side mirrors
type SyncHandler struct {
	service services.SyncService
	logger  *slog.Logger
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(service services.SyncService, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{
		service: service,
		logger:  logger,
	}
}

// Snapshot returns the caller's complete entity set
// GET /api/sync
func (h *SyncHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	snapshot, err := h.service.Snapshot(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, snapshot)
}
