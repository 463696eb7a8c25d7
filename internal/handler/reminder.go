package handler

import (
	"log/slog"
	"net/http"

	"docvault/internal/domain/models"
	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// ReminderHandler handles reminder HTTP requests
type ReminderHandler struct {
	service services.ReminderService
	logger  *slog.Logger
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(service services.ReminderService, logger *slog.Logger) *ReminderHandler {
	return &ReminderHandler{
		service: service,
		logger:  logger,
	}
}

// ListReminders returns a filtered, paginated listing
// GET /api/reminders?type=...&completed=true&upcoming=true
func (h *ReminderHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	filter := &models.ReminderFilter{
		Type:     r.URL.Query().Get("type"),
		Upcoming: queryBool(r, "upcoming"),
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 50),
	}
	switch r.URL.Query().Get("completed") {
	case "true":
		v := true
		filter.Completed = &v
	case "false":
		v := false
		filter.Completed = &v
	}

	reminders, pagination, err := h.service.ListReminders(r.Context(), userID, filter)
	if err != nil {
		handleError(w, err)
		return
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"reminders":  reminders,
		"pagination": pagination,
	})
}

// CreateReminder creates a reminder
// POST /api/reminders
func (h *ReminderHandler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.CreateReminderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reminder, err := h.service.CreateReminder(r.Context(), userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, reminder)
}

// UpdateReminder applies a partial update
// PATCH /api/reminders/{id}
func (h *ReminderHandler) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Reminder ID is required")
		return
	}

	var req services.UpdateReminderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reminder, err := h.service.UpdateReminder(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, reminder)
}

// DeleteReminder removes a reminder
// DELETE /api/reminders/{id}
func (h *ReminderHandler) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Reminder ID is required")
		return
	}

	if err := h.service.DeleteReminder(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
