package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/domain/entity"
	domainerror "github.com/budgetsnap/backend/internal/domain/error"
	"github.com/budgetsnap/backend/internal/integration/persistence/model"
)

// profileRepository implements the adapter.ProfileRepository interface.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository instance.
func NewProfileRepository(db *gorm.DB) adapter.ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

// Create creates a new profile in the database.
func (r *profileRepository) Create(ctx context.Context, profile *entity.UserProfile) error {
	profileModel, err := model.UserProfileFromEntity(profile)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Create(profileModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByUser retrieves the profile for a subject. Returns nil, nil when
// no profile exists yet.
func (r *profileRepository) FindByUser(ctx context.Context, subjectID string) (*entity.UserProfile, error) {
	var profileModel model.UserProfileModel
	result := r.db.WithContext(ctx).Where("user_id = ?", subjectID).First(&profileModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return profileModel.ToEntity()
}

// Update persists changes to an existing profile.
func (r *profileRepository) Update(ctx context.Context, profile *entity.UserProfile) error {
	profileModel, err := model.UserProfileFromEntity(profile)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&model.UserProfileModel{}).
		Where("id = ?", profile.ID).
		Select("*").
		Updates(profileModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrProfileNotFound
	}
	return nil
}
