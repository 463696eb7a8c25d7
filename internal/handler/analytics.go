package handler

import (
	"log/slog"
	"net/http"

	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// AnalyticsHandler handles analytics HTTP requests
type AnalyticsHandler struct {
	service services.AnalyticsService
	logger  *slog.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service services.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger,
	}
}

// GetReport recomputes and returns the full analytics snapshot
// GET /api/analytics?range=7
func (h *AnalyticsHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	report, err := h.service.Report(r.Context(), userID, queryInt(r, "range", 7))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, report)
}

// TrackEvent bumps one of the daily event counters
// POST /api/analytics
func (h *AnalyticsHandler) TrackEvent(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.TrackRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Track(r.Context(), userID, req.Event); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
