package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

type noteService struct {
	profiles services.ProfileService
	noteRepo repositories.NoteRepository
	docRepo  repositories.DocumentRepository
	logger   *slog.Logger
}

// NewNoteService creates a new note service
func NewNoteService(
	profiles services.ProfileService,
	noteRepo repositories.NoteRepository,
	docRepo repositories.DocumentRepository,
	logger *slog.Logger,
) services.NoteService {
	return &noteService{
		profiles: profiles,
		noteRepo: noteRepo,
		docRepo:  docRepo,
		logger:   logger,
	}
}

// CreateNote creates a note; a linked document must belong to the caller
func (s *noteService) CreateNote(ctx context.Context, userID string, req *services.CreateNoteRequest) (*models.Note, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 300)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DocumentID != nil && *req.DocumentID == "" {
		req.DocumentID = nil
	}
	if req.DocumentID != nil {
		if _, err := s.docRepo.GetByID(ctx, *req.DocumentID, profile.ID); err != nil {
			return nil, fmt.Errorf("linked document: %w", err)
		}
	}

	note := &models.Note{
		ProfileID:  profile.ID,
		Title:      req.Title,
		Content:    req.Content,
		IsPinned:   req.IsPinned,
		DocumentID: req.DocumentID,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note created", "id", note.ID, "document_id", note.DocumentID)

	return s.noteRepo.GetByID(ctx, note.ID, profile.ID)
}

// ListNotes returns notes ordered pinned-first, most recently updated first
func (s *noteService) ListNotes(ctx context.Context, userID string, filter *models.NoteFilter) ([]models.Note, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if filter == nil {
		filter = &models.NoteFilter{}
	}

	return s.noteRepo.List(ctx, profile.ID, filter)
}

// UpdateNote applies a partial update
func (s *noteService) UpdateNote(ctx context.Context, id, userID string, req *services.UpdateNoteRequest) (*models.Note, error) {
	if req.Title != nil {
		if err := validation.ValidateStruct(req,
			validation.Field(&req.Title, validation.Length(1, 300)),
		); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	note, err := s.noteRepo.GetByID(ctx, id, profile.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.IsPinned != nil {
		note.IsPinned = *req.IsPinned
	}
	if req.DocumentID != nil {
		// Empty string unlinks the document
		if *req.DocumentID == "" {
			note.DocumentID = nil
		} else {
			if _, err := s.docRepo.GetByID(ctx, *req.DocumentID, profile.ID); err != nil {
				return nil, fmt.Errorf("linked document: %w", err)
			}
			note.DocumentID = req.DocumentID
		}
	}
	note.UpdatedAt = time.Now()

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	return s.noteRepo.GetByID(ctx, note.ID, profile.ID)
}

// DeleteNote removes a note
func (s *noteService) DeleteNote(ctx context.Context, id, userID string) error {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.noteRepo.Delete(ctx, id, profile.ID); err != nil {
		return err
	}

	s.logger.Info("note deleted", "id", id)

	return nil
}
