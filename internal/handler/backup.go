package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"docvault/internal/domain/models"
	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// BackupHandler handles backup and restore HTTP requests
type BackupHandler struct {
	service services.BackupService
	logger  *slog.Logger
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(service services.BackupService, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{
		service: service,
		logger:  logger,
	}
}

// ListBackups returns the most recent backups
// GET /api/backups?limit=...
func (h *BackupHandler) ListBackups(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	backups, err := h.service.ListBackups(r.Context(), userID, queryInt(r, "limit", 0))
	if err != nil {
		handleError(w, err)
		return
	}
	if backups == nil {
		backups = []models.Backup{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"backups": backups})
}

// CreateBackup exports the caller's data into a zip archive
// POST /api/backups
func (h *BackupHandler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.CreateBackupRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	backup, err := h.service.CreateBackup(r.Context(), userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"backup":      backup,
		"downloadUrl": backup.FileURL,
		"fileSize":    backup.FileSize,
	})
}

// DeleteBackup removes a backup record
// DELETE /api/backups/{id}
func (h *BackupHandler) DeleteBackup(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Backup ID is required")
		return
	}

	if err := h.service.DeleteBackup(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Restore re-materializes selected categories from uploaded backup
// data. POST /api/backups/restore takes a JSON body {backupData,
// options}; backupData is either the snapshot object or a
// base64-encoded archive.
func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req struct {
		BackupData json.RawMessage        `json:"backupData"`
		Options    *models.RestoreOptions `json:"options"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	data, err := decodeBackupData(req.BackupData)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "No backup data provided")
		return
	}

	result, err := h.service.Restore(r.Context(), userID, data, req.Options)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"results": result,
	})
}

// decodeBackupData turns the backupData field into the bytes the
// service consumes: decoded archive bytes when it is a base64 string
// (with or without a data URL prefix), the raw snapshot JSON otherwise.
func decodeBackupData(raw json.RawMessage) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, errors.New("missing backup data")
	}
	if trimmed[0] != '"' {
		return trimmed, nil
	}

	var encoded string
	if err := json.Unmarshal(trimmed, &encoded); err != nil {
		return nil, err
	}
	if _, rest, ok := strings.Cut(encoded, ";base64,"); ok {
		encoded = rest
	}
	return base64.StdEncoding.DecodeString(encoded)
}
