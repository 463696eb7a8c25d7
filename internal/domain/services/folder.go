package services

import (
	"context"

	"docvault/internal/domain/models"

	"docvault/internal/httputil"
)

// FolderService handles folder tree business logic
type FolderService interface {
	// CreateFolder creates a new folder, optionally under a parent
	CreateFolder(ctx context.Context, userID string, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder retrieves a folder with its live document count
	GetFolder(ctx context.Context, id, userID string) (*models.Folder, error)

	// ListFolders returns folders filtered by parent, with document counts
	ListFolders(ctx context.Context, userID string, parentID *string, rootOnly bool) ([]models.Folder, error)

	// UpdateFolder renames, restyles or moves a folder. Moves are
	// rejected when they would create a cycle.
	UpdateFolder(ctx context.Context, id, userID string, req *UpdateFolderRequest) (*models.Folder, error)

	// DeleteFolder removes a folder; child folders go with it and
	// contained documents drop back to root level.
	DeleteFolder(ctx context.Context, id, userID string) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	ParentID    *string `json:"parentId,omitempty"` // null for root folders
}

// UpdateFolderRequest represents a folder update request. ParentID is
// tri-state: absent leaves the folder in place, null moves it to root,
// a value moves it under that parent.
type UpdateFolderRequest struct {
	Name        *string                 `json:"name,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Color       *string                 `json:"color,omitempty"`
	Icon        *string                 `json:"icon,omitempty"`
	ParentID    httputil.OptionalString `json:"parentId"`
}
