package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/domain/entity"
	domainerror "github.com/budgetsnap/backend/internal/domain/error"
)

// validThemes are the accepted UI themes.
var validThemes = map[string]struct{}{
	"light":  {},
	"dark":   {},
	"system": {},
}

// UpdateSettingsInput represents the input for updating settings. Nil
// pointer fields are left unchanged.
type UpdateSettingsInput struct {
	SubjectID     string
	Theme         *string
	Currency      *string
	BudgetLimits  map[string]decimal.Decimal
	Notifications *entity.NotificationSettings
}

// UpdateSettingsUseCase handles settings updates. Defaults are written
// first when the user has no settings row yet.
type UpdateSettingsUseCase struct {
	settingsRepo adapter.SettingsRepository
	get          *GetSettingsUseCase
}

// NewUpdateSettingsUseCase creates a new UpdateSettingsUseCase instance.
func NewUpdateSettingsUseCase(settingsRepo adapter.SettingsRepository, get *GetSettingsUseCase) *UpdateSettingsUseCase {
	return &UpdateSettingsUseCase{settingsRepo: settingsRepo, get: get}
}

// Execute applies the update.
func (uc *UpdateSettingsUseCase) Execute(ctx context.Context, input UpdateSettingsInput) (*entity.UserSettings, error) {
	settings, err := uc.get.Execute(ctx, input.SubjectID)
	if err != nil {
		return nil, err
	}

	if input.Theme != nil {
		if _, ok := validThemes[*input.Theme]; !ok {
			return nil, fmt.Errorf("unknown theme %q", *input.Theme)
		}
		settings.Theme = *input.Theme
	}
	if input.Currency != nil && *input.Currency != "" {
		settings.Currency = *input.Currency
	}
	if input.BudgetLimits != nil {
		for category, limit := range input.BudgetLimits {
			if limit.IsNegative() {
				return nil, domainerror.ErrInvalidBudget
			}
			if limit.IsZero() {
				delete(settings.BudgetLimits, category)
				continue
			}
			settings.BudgetLimits[category] = limit
		}
	}
	if input.Notifications != nil {
		settings.Notifications = *input.Notifications
	}
	settings.UpdatedAt = time.Now().UTC()

	if err := uc.settingsRepo.Update(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return settings, nil
}
