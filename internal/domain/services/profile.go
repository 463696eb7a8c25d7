package services

import (
	"context"

	"docvault/internal/domain/models"
)

// ProfileService handles profile business logic
type ProfileService interface {
	// GetProfile returns the caller's profile, creating an empty one on
	// first access.
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)

	// UpdateProfile applies a partial settings update. Storage counters
	// are not client-writable.
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*models.Profile, error)
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	College    *string `json:"college,omitempty"`
	University *string `json:"university,omitempty"`
	Department *string `json:"department,omitempty"`
	Semester   *string `json:"semester,omitempty"`
	RollNumber *string `json:"rollNumber,omitempty"`
	Language   *string `json:"language,omitempty"`
	Theme      *string `json:"theme,omitempty"`
}
