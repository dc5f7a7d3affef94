// Package profile contains user profile use cases.
package profile

import (
	"context"
	"fmt"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/domain/entity"
)

// GetProfileInput represents the input for fetching a profile.
type GetProfileInput struct {
	SubjectID   string
	Email       string
	DisplayName string
}

// GetProfileUseCase fetches a user's profile, creating it on first access.
type GetProfileUseCase struct {
	profileRepo adapter.ProfileRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(profileRepo adapter.ProfileRepository) *GetProfileUseCase {
	return &GetProfileUseCase{profileRepo: profileRepo}
}

// Execute returns the profile, lazily creating one from the token claims
// when none exists yet.
func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*entity.UserProfile, error) {
	profile, err := uc.profileRepo.FindByUser(ctx, input.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if profile != nil {
		return profile, nil
	}

	profile = entity.NewUserProfile(input.SubjectID, input.Email, input.DisplayName)
	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}
