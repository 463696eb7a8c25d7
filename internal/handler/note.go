package handler

import (
	"log/slog"
	"net/http"

	"docvault/internal/domain/models"
	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// NoteHandler handles note HTTP requests
type NoteHandler struct {
	service services.NoteService
	logger  *slog.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(service services.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		service: service,
		logger:  logger,
	}
}

// ListNotes returns notes, pinned first
// GET /api/notes?documentId=...&pinned=true&search=...
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	filter := &models.NoteFilter{
		DocumentID: r.URL.Query().Get("documentId"),
		PinnedOnly: queryBool(r, "pinned"),
		Search:     r.URL.Query().Get("search"),
	}

	notes, err := h.service.ListNotes(r.Context(), userID, filter)
	if err != nil {
		handleError(w, err)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"notes": notes})
}

// CreateNote creates a note
// POST /api/notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.CreateNoteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.service.CreateNote(r.Context(), userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, note)
}

// UpdateNote applies a partial update
// PUT /api/notes/{id}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Note ID is required")
		return
	}

	var req services.UpdateNoteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.service.UpdateNote(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// DeleteNote removes a note
// DELETE /api/notes/{id}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Note ID is required")
		return
	}

	if err := h.service.DeleteNote(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
