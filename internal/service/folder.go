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

// DefaultFolderColor matches the client's default accent.
const DefaultFolderColor = "#3B82F6"

type folderService struct {
	profiles   services.ProfileService
	folderRepo repositories.FolderRepository
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	profiles services.ProfileService,
	folderRepo repositories.FolderRepository,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		profiles:   profiles,
		folderRepo: folderRepo,
		logger:     logger,
	}
}

// CreateFolder creates a new folder
func (s *folderService) CreateFolder(ctx context.Context, userID string, req *services.CreateFolderRequest) (*models.Folder, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	if req.ParentID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.ParentID, profile.ID); err != nil {
			return nil, fmt.Errorf("parent folder: %w", err)
		}
	}

	folder := &models.Folder{
		ProfileID:   profile.ID,
		Name:        req.Name,
		Description: req.Description,
		Color:       DefaultFolderColor,
		Icon:        req.Icon,
		ParentID:    req.ParentID,
		IsRoot:      req.ParentID == nil,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if req.Color != nil && *req.Color != "" {
		folder.Color = *req.Color
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// GetFolder retrieves a folder with its live document count
func (s *folderService) GetFolder(ctx context.Context, id, userID string) (*models.Folder, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.folderRepo.GetByID(ctx, id, profile.ID)
}

// ListFolders returns folders filtered by parent
func (s *folderService) ListFolders(ctx context.Context, userID string, parentID *string, rootOnly bool) ([]models.Folder, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.folderRepo.List(ctx, profile.ID, parentID, rootOnly)
}

// UpdateFolder renames, restyles or moves a folder
func (s *folderService) UpdateFolder(ctx context.Context, id, userID string, req *services.UpdateFolderRequest) (*models.Folder, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.GetByID(ctx, id, profile.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		folder.Name = *req.Name
	}
	if req.Description != nil {
		folder.Description = req.Description
	}
	if req.Color != nil && *req.Color != "" {
		folder.Color = *req.Color
	}
	if req.Icon != nil {
		folder.Icon = req.Icon
	}

	if req.ParentID.Present {
		if req.ParentID.Value == nil || *req.ParentID.Value == "" {
			// Move to root
			folder.ParentID = nil
		} else {
			parentID := *req.ParentID.Value

			parent, err := s.folderRepo.GetByID(ctx, parentID, profile.ID)
			if err != nil {
				return nil, fmt.Errorf("parent folder: %w", err)
			}

			// Reject moves that would make the folder its own ancestor
			if err := s.validateNoCycle(ctx, id, parentID, profile.ID); err != nil {
				return nil, err
			}

			folder.ParentID = &parent.ID
		}
	}
	folder.IsRoot = folder.ParentID == nil
	folder.UpdatedAt = time.Now()

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// DeleteFolder removes a folder. The schema cascades to child folders
// and detaches contained documents back to root level.
func (s *folderService) DeleteFolder(ctx context.Context, id, userID string) error {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	folder, err := s.folderRepo.GetByID(ctx, id, profile.ID)
	if err != nil {
		return err
	}

	if err := s.folderRepo.Delete(ctx, id, profile.ID); err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", id, "name", folder.Name)

	return nil
}

// validateNoCycle walks the ancestor chain of the proposed parent. If
// the folder being moved appears anywhere on that chain the move would
// create a cycle, including the self-parent case.
func (s *folderService) validateNoCycle(ctx context.Context, folderID, newParentID, profileID string) error {
	if folderID == newParentID {
		return fmt.Errorf("%w: folder cannot be its own parent", domain.ErrValidation)
	}

	current := &newParentID
	for current != nil {
		ancestor, err := s.folderRepo.GetByID(ctx, *current, profileID)
		if err != nil {
			return fmt.Errorf("resolve ancestor chain: %w", err)
		}
		if ancestor.ParentID != nil && *ancestor.ParentID == folderID {
			return fmt.Errorf("%w: folder cannot be moved under its own descendant", domain.ErrValidation)
		}
		current = ancestor.ParentID
	}

	return nil
}

func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
	)
}

func (s *folderService) validateUpdateRequest(req *services.UpdateFolderRequest) error {
	if req.Name != nil {
		return validation.ValidateStruct(req,
			validation.Field(&req.Name, validation.Length(1, 200)),
		)
	}
	return nil
}
