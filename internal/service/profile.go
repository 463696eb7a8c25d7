package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

type profileService struct {
	profileRepo repositories.ProfileRepository
	logger      *slog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repositories.ProfileRepository, logger *slog.Logger) services.ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// GetProfile returns the caller's profile, creating an empty one on first access
func (s *profileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	profile = &models.Profile{
		UserID:       userID,
		Language:     "en",
		Theme:        "light",
		StorageLimit: models.DefaultStorageLimit,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		// Concurrent first request may have won the race
		if errors.Is(err, domain.ErrConflict) {
			return s.profileRepo.GetByUserID(ctx, userID)
		}
		return nil, err
	}

	s.logger.Info("profile created", "profile_id", profile.ID, "user_id", userID)

	return profile, nil
}

// UpdateProfile applies a partial settings update
func (s *profileService) UpdateProfile(ctx context.Context, userID string, req *services.UpdateProfileRequest) (*models.Profile, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Email != nil {
		profile.Email = *req.Email
	}
	if req.Phone != nil {
		profile.Phone = req.Phone
	}
	if req.College != nil {
		profile.College = req.College
	}
	if req.University != nil {
		profile.University = req.University
	}
	if req.Department != nil {
		profile.Department = req.Department
	}
	if req.Semester != nil {
		profile.Semester = req.Semester
	}
	if req.RollNumber != nil {
		profile.RollNumber = req.RollNumber
	}
	if req.Language != nil {
		profile.Language = *req.Language
	}
	if req.Theme != nil {
		profile.Theme = *req.Theme
	}
	profile.UpdatedAt = time.Now()

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "profile_id", profile.ID)

	return profile, nil
}

func (s *profileService) validateUpdateRequest(req *services.UpdateProfileRequest) error {
	rules := []*validation.FieldRules{}

	if req.Name != nil {
		rules = append(rules, validation.Field(&req.Name, validation.Length(1, 200)))
	}
	if req.Email != nil {
		// EmailFormat checks syntax only; is.Email would do a live
		// MX lookup per update.
		rules = append(rules, validation.Field(&req.Email, is.EmailFormat))
	}
	if req.Theme != nil {
		rules = append(rules, validation.Field(&req.Theme, validation.In("light", "dark", "system")))
	}

	return validation.ValidateStruct(req, rules...)
}
