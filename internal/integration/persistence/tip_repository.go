package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/domain/entity"
	"github.com/budgetsnap/backend/internal/integration/persistence/model"
)

// tipRepository implements the adapter.TipRepository interface.
type tipRepository struct {
	db *gorm.DB
}

// NewTipRepository creates a new tip repository instance.
func NewTipRepository(db *gorm.DB) adapter.TipRepository {
	return &tipRepository{
		db: db,
	}
}

// CreateMany inserts a batch of tips.
func (r *tipRepository) CreateMany(ctx context.Context, tips []*entity.Tip) error {
	if len(tips) == 0 {
		return nil
	}

	tipModels := make([]*model.TipModel, len(tips))
	for i, tip := range tips {
		tipModel, err := model.TipFromEntity(tip)
		if err != nil {
			return err
		}
		tipModels[i] = tipModel
	}

	result := r.db.WithContext(ctx).Create(tipModels)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindGeneral retrieves general (non-personalized) tips, newest first,
// optionally filtered by category.
func (r *tipRepository) FindGeneral(ctx context.Context, category string, limit int) ([]*entity.Tip, error) {
	query := r.db.WithContext(ctx).
		Where("personalized = ?", false).
		Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var tipModels []model.TipModel
	if result := query.Find(&tipModels); result.Error != nil {
		return nil, result.Error
	}

	tips := make([]*entity.Tip, len(tipModels))
	for i := range tipModels {
		tip, err := tipModels[i].ToEntity()
		if err != nil {
			return nil, err
		}
		tips[i] = tip
	}
	return tips, nil
}

// FindPersonalizedByTitle looks up a personalized tip for the user by
// exact title. Returns nil when absent.
func (r *tipRepository) FindPersonalizedByTitle(ctx context.Context, subjectID, title string) (*entity.Tip, error) {
	var tipModel model.TipModel
	result := r.db.WithContext(ctx).
		Where("personalized = ? AND user_id = ? AND title = ?", true, subjectID, title).
		First(&tipModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return tipModel.ToEntity()
}
