package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/domain/entity"
	domainerror "github.com/budgetsnap/backend/internal/domain/error"
)

// UpdateProfileInput represents the input for updating a profile. Nil
// pointer fields are left unchanged.
type UpdateProfileInput struct {
	SubjectID     string
	DisplayName   *string
	AvatarURL     *string
	MonthlyBudget *decimal.Decimal
	BudgetTargets map[string]decimal.Decimal
	Preferences   map[string]string
}

// UpdateProfileUseCase handles profile updates.
type UpdateProfileUseCase struct {
	profileRepo adapter.ProfileRepository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(profileRepo adapter.ProfileRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{profileRepo: profileRepo}
}

// Execute applies the update.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*entity.UserProfile, error) {
	profile, err := uc.profileRepo.FindByUser(ctx, input.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if profile == nil {
		return nil, domainerror.ErrProfileNotFound
	}

	if input.DisplayName != nil {
		profile.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.AvatarURL != nil {
		profile.AvatarURL = input.AvatarURL
	}
	if input.MonthlyBudget != nil {
		if !input.MonthlyBudget.IsPositive() {
			return nil, domainerror.ErrInvalidBudget
		}
		profile.MonthlyBudget = input.MonthlyBudget
	}
	if input.BudgetTargets != nil {
		for category, target := range input.BudgetTargets {
			if target.IsNegative() {
				return nil, domainerror.ErrInvalidBudget
			}
			profile.BudgetTargets[category] = target
		}
	}
	if input.Preferences != nil {
		for key, value := range input.Preferences {
			profile.Preferences[key] = value
		}
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}
