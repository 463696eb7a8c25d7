package services

import (
	"context"

	"docvault/internal/domain/models"
)

// DocumentService handles document business logic
type DocumentService interface {
	// CreateDocument records an uploaded file's metadata, links tags and
	// charges the file size against the profile's storage quota.
	CreateDocument(ctx context.Context, userID string, req *CreateDocumentRequest) (*models.Document, error)

	// GetDocument retrieves a document and counts a view against today's
	// analytics.
	GetDocument(ctx context.Context, id, userID string) (*models.Document, error)

	// ListDocuments returns a filtered, paginated listing.
	ListDocuments(ctx context.Context, userID string, filter *models.DocumentFilter) ([]models.Document, *models.Pagination, error)

	// UpdateDocument applies a partial metadata update.
	UpdateDocument(ctx context.Context, id, userID string, req *UpdateDocumentRequest) (*models.Document, error)

	// DeleteDocuments soft-deletes one or more documents in a single call.
	DeleteDocuments(ctx context.Context, userID string, ids []string) error
}

// CreateDocumentRequest represents a document upload registration
type CreateDocumentRequest struct {
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	SubCategory   *string  `json:"subCategory,omitempty"`
	Description   *string  `json:"description,omitempty"`
	FileURL       string   `json:"fileUrl"`
	FileName      string   `json:"fileName"`
	FileSize      int64    `json:"fileSize"`
	FileType      string   `json:"fileType"`
	MimeType      string   `json:"mimeType"`
	FolderID      *string  `json:"folderId,omitempty"`
	IsFavorite    bool     `json:"isFavorite"`
	ExtractedText *string  `json:"extractedText,omitempty"`
	TagIDs        []string `json:"tagIds,omitempty"`
}

// UpdateDocumentRequest represents a partial document update.
// Nil pointer fields are left unchanged; TagIDs non-nil replaces the
// full tag set.
type UpdateDocumentRequest struct {
	Title       *string  `json:"title,omitempty"`
	Category    *string  `json:"category,omitempty"`
	SubCategory *string  `json:"subCategory,omitempty"`
	Description *string  `json:"description,omitempty"`
	FolderID    *string  `json:"folderId,omitempty"`
	IsFavorite  *bool    `json:"isFavorite,omitempty"`
	TagIDs      []string `json:"tagIds,omitempty"`
}
