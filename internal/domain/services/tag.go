package services

import (
	"context"

	"docvault/internal/domain/models"
)

// TagService handles tag business logic
type TagService interface {
	CreateTag(ctx context.Context, userID string, req *CreateTagRequest) (*models.Tag, error)
	ListTags(ctx context.Context, userID string) ([]models.Tag, error)
	UpdateTag(ctx context.Context, id, userID string, req *UpdateTagRequest) (*models.Tag, error)
	DeleteTag(ctx context.Context, id, userID string) error
}

// CreateTagRequest represents a tag creation request
type CreateTagRequest struct {
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
}

// UpdateTagRequest represents a tag update request
type UpdateTagRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}
