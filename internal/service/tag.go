package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

// DefaultTagColor matches the client's default accent.
const DefaultTagColor = "#3B82F6"

type tagService struct {
	profiles services.ProfileService
	tagRepo  repositories.TagRepository
	logger   *slog.Logger
}

// NewTagService creates a new tag service
func NewTagService(profiles services.ProfileService, tagRepo repositories.TagRepository, logger *slog.Logger) services.TagService {
	return &tagService{
		profiles: profiles,
		tagRepo:  tagRepo,
		logger:   logger,
	}
}

// CreateTag creates a tag; names are unique per profile
func (s *tagService) CreateTag(ctx context.Context, userID string, req *services.CreateTagRequest) (*models.Tag, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	tag := &models.Tag{
		ProfileID: profile.ID,
		Name:      req.Name,
		Color:     DefaultTagColor,
	}
	if req.Color != nil && *req.Color != "" {
		tag.Color = *req.Color
	}

	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}

	s.logger.Info("tag created", "id", tag.ID, "name", tag.Name)

	return tag, nil
}

// ListTags returns every tag owned by the caller
func (s *tagService) ListTags(ctx context.Context, userID string) ([]models.Tag, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.tagRepo.List(ctx, profile.ID)
}

// UpdateTag renames or recolors a tag
func (s *tagService) UpdateTag(ctx context.Context, id, userID string, req *services.UpdateTagRequest) (*models.Tag, error) {
	if req.Name != nil {
		if err := validation.ValidateStruct(req,
			validation.Field(&req.Name, validation.Length(1, 100)),
		); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	tag, err := s.tagRepo.GetByID(ctx, id, profile.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tag.Name = *req.Name
	}
	if req.Color != nil && *req.Color != "" {
		tag.Color = *req.Color
	}

	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

// DeleteTag removes a tag; document links go with it
func (s *tagService) DeleteTag(ctx context.Context, id, userID string) error {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.tagRepo.Delete(ctx, id, profile.ID); err != nil {
		return err
	}

	s.logger.Info("tag deleted", "id", id)

	return nil
}
