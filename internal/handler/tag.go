package handler

import (
	"log/slog"
	"net/http"

	"docvault/internal/domain/models"
	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// TagHandler handles tag HTTP requests
type TagHandler struct {
	service services.TagService
	logger  *slog.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(service services.TagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{
		service: service,
		logger:  logger,
	}
}

// ListTags returns every tag owned by the caller
// GET /api/tags
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	tags, err := h.service.ListTags(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"tags": tags})
}

// CreateTag creates a tag
// POST /api/tags
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.CreateTagRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tag, err := h.service.CreateTag(r.Context(), userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, tag)
}

// UpdateTag renames or recolors a tag
// PUT /api/tags/{id}
func (h *TagHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Tag ID is required")
		return
	}

	var req services.UpdateTagRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tag, err := h.service.UpdateTag(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tag)
}

// DeleteTag removes a tag
// DELETE /api/tags/{id}
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Tag ID is required")
		return
	}

	if err := h.service.DeleteTag(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
