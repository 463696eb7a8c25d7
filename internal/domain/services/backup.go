package services

import (
	"context"

	"docvault/internal/domain/models"
)

// BackupService handles export and restore of a profile's data
type BackupService interface {
	// CreateBackup assembles a snapshot of the caller's data, packs it
	// into a zip archive and records the result. A failure mid-export
	// leaves the record in the failed state.
	CreateBackup(ctx context.Context, userID string, req *CreateBackupRequest) (*models.Backup, error)

	// ListBackups returns the most recent backups, newest first.
	ListBackups(ctx context.Context, userID string, limit int) ([]models.Backup, error)

	// DeleteBackup removes a backup record and its artifact.
	DeleteBackup(ctx context.Context, id, userID string) error

	// Restore re-materializes selected categories from an uploaded
	// archive. Documents are never restored; item failures are collected
	// rather than aborting the run.
	Restore(ctx context.Context, userID string, archive []byte, opts *models.RestoreOptions) (*models.RestoreResult, error)
}

// CreateBackupRequest represents a backup creation request
type CreateBackupRequest struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"` // full or partial, defaults to full
}
