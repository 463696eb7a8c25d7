package services

import (
	"context"
	"time"

	"docvault/internal/domain/models"
)

// SyncService produces full snapshots for client-side mirrors
type SyncService interface {
	// Snapshot returns the caller's complete entity set in one payload.
	// Clients replace their local mirror with it wholesale.
	Snapshot(ctx context.Context, userID string) (*SyncSnapshot, error)
}

// SyncSnapshot is the payload a client mirror consumes
type SyncSnapshot struct {
	Profile   *models.Profile   `json:"profile"`
	Documents []models.Document `json:"documents"`
	Folders   []models.Folder   `json:"folders"`
	Tags      []models.Tag      `json:"tags"`
	Reminders []models.Reminder `json:"reminders"`
	Notes     []models.Note     `json:"notes"`
	SyncedAt  time.Time         `json:"syncedAt"`
}
