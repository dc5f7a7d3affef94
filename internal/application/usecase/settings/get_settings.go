// Package settings contains user settings use cases.
package settings

import (
	"context"
	"fmt"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/domain/entity"
)

// GetSettingsUseCase fetches a user's settings, writing the defaults on
// first access.
type GetSettingsUseCase struct {
	settingsRepo adapter.SettingsRepository
}

// NewGetSettingsUseCase creates a new GetSettingsUseCase instance.
func NewGetSettingsUseCase(settingsRepo adapter.SettingsRepository) *GetSettingsUseCase {
	return &GetSettingsUseCase{settingsRepo: settingsRepo}
}

// Execute returns the settings.
func (uc *GetSettingsUseCase) Execute(ctx context.Context, subjectID string) (*entity.UserSettings, error) {
	settings, err := uc.settingsRepo.FindByUser(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}
	if settings != nil {
		return settings, nil
	}

	settings = entity.DefaultUserSettings(subjectID)
	if err := uc.settingsRepo.Create(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to create settings: %w", err)
	}
	return settings, nil
}
