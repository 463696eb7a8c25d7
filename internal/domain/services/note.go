package services

import (
	"context"

	"docvault/internal/domain/models"
)

// NoteService handles note business logic
type NoteService interface {
	// CreateNote creates a note; a linked document must belong to the
	// same profile.
	CreateNote(ctx context.Context, userID string, req *CreateNoteRequest) (*models.Note, error)

	ListNotes(ctx context.Context, userID string, filter *models.NoteFilter) ([]models.Note, error)

	UpdateNote(ctx context.Context, id, userID string, req *UpdateNoteRequest) (*models.Note, error)

	DeleteNote(ctx context.Context, id, userID string) error
}

// CreateNoteRequest represents a note creation request
type CreateNoteRequest struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	IsPinned   bool    `json:"isPinned"`
	DocumentID *string `json:"documentId,omitempty"`
}

// UpdateNoteRequest represents a partial note update
type UpdateNoteRequest struct {
	Title      *string `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
	IsPinned   *bool   `json:"isPinned,omitempty"`
	DocumentID *string `json:"documentId,omitempty"`
}
