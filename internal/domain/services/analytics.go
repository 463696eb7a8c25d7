package services

import (
	"context"

	"docvault/internal/domain/models"
)

// AnalyticsService computes usage reports and records trackable events
type AnalyticsService interface {
	// Report recomputes the full analytics snapshot over the given
	// trailing window in days.
	Report(ctx context.Context, userID string, days int) (*models.AnalyticsReport, error)

	// Track bumps one of the daily event counters for today.
	Track(ctx context.Context, userID, event string) error
}

// TrackRequest represents an event tracking request
type TrackRequest struct {
	Event string `json:"event"`
}
