package handler

import (
	"log/slog"
	"net/http"

	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// ShareHandler handles document sharing HTTP requests
type ShareHandler struct {
	service services.ShareService
	logger  *slog.Logger
}

// NewShareHandler creates a new share handler
func NewShareHandler(service services.ShareService, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{
		service: service,
		logger:  logger,
	}
}

// GetShareInfo returns the document's share URL, QR code and links
// GET /api/documents/{id}/share
func (h *ShareHandler) GetShareInfo(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Document ID is required")
		return
	}

	info, err := h.service.GetShareInfo(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, info)
}

// CreateLink resolves a share link: the document's own token unless
// the body asks for a new constrained link
// POST /api/documents/{id}/share
func (h *ShareHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Document ID is required")
		return
	}

	var req services.CreateLinkRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	link, err := h.service.CreateLink(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, link)
}

// RevokeLink deletes a share link
// DELETE /api/share/links/{id}
func (h *ShareHandler) RevokeLink(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Link ID is required")
		return
	}

	if err := h.service.RevokeLink(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
