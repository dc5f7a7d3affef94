package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/domain/entity"
	"github.com/budgetsnap/backend/internal/integration/persistence/model"
)

// settingsRepository implements the adapter.SettingsRepository interface.
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository instance.
func NewSettingsRepository(db *gorm.DB) adapter.SettingsRepository {
	return &settingsRepository{
		db: db,
	}
}

// Create creates new settings in the database.
func (r *settingsRepository) Create(ctx context.Context, settings *entity.UserSettings) error {
	settingsModel, err := model.UserSettingsFromEntity(settings)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Create(settingsModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByUser retrieves settings for a subject. Returns nil, nil when no
// settings exist yet.
func (r *settingsRepository) FindByUser(ctx context.Context, subjectID string) (*entity.UserSettings, error) {
	var settingsModel model.UserSettingsModel
	result := r.db.WithContext(ctx).Where("user_id = ?", subjectID).First(&settingsModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return settingsModel.ToEntity()
}

// Update persists changes to existing settings.
func (r *settingsRepository) Update(ctx context.Context, settings *entity.UserSettings) error {
	settingsModel, err := model.UserSettingsFromEntity(settings)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&model.UserSettingsModel{}).
		Where("id = ?", settings.ID).
		Select("*").
		Updates(settingsModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
