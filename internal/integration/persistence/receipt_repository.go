// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/domain/entity"
	domainerror "github.com/budgetsnap/backend/internal/domain/error"
	"github.com/budgetsnap/backend/internal/integration/persistence/model"
)

// receiptRepository implements the adapter.ReceiptRepository interface.
type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository instance.
func NewReceiptRepository(db *gorm.DB) adapter.ReceiptRepository {
	return &receiptRepository{
		db: db,
	}
}

// Create creates a new receipt in the database.
func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	receiptModel, err := model.ReceiptFromEntity(receipt)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Create(receiptModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a receipt visible to the given subject, either as
// owner or as a sharing participant.
func (r *receiptRepository) FindByID(ctx context.Context, id uuid.UUID, subjectID string) (*entity.Receipt, error) {
	var receiptModel model.ReceiptModel
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where(r.visibleTo(subjectID)).
		First(&receiptModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrReceiptNotFound
		}
		return nil, result.Error
	}
	return receiptModel.ToEntity()
}

// FindByUser retrieves receipts owned by or shared with the subject,
// newest first, honoring the filter.
func (r *receiptRepository) FindByUser(ctx context.Context, subjectID string, filter adapter.ReceiptFilter) ([]*entity.Receipt, error) {
	query := r.db.WithContext(ctx).
		Where(r.visibleTo(subjectID)).
		Order("date DESC, created_at DESC")

	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	// The category filter must narrow the set before pagination or pages
	// come back short. Items live in a JSON document, so the predicate
	// matches the encoded form, like visibleTo does for shared_with.
	if filter.Category != "" {
		query = query.Where("items LIKE ?", fmt.Sprintf(`%%"category":"%s"%%`, filter.Category))
	}
	if filter.Skip > 0 {
		query = query.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var receiptModels []model.ReceiptModel
	if result := query.Find(&receiptModels); result.Error != nil {
		return nil, result.Error
	}
	return toReceiptEntities(receiptModels)
}

// FindOwnedBetween retrieves receipts owned by the subject with dates in
// [start, end].
func (r *receiptRepository) FindOwnedBetween(ctx context.Context, subjectID string, start, end time.Time) ([]*entity.Receipt, error) {
	var receiptModels []model.ReceiptModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", subjectID, start, end).
		Order("date ASC").
		Find(&receiptModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toReceiptEntities(receiptModels)
}

// Update persists changes to a receipt owned by the subject.
func (r *receiptRepository) Update(ctx context.Context, receipt *entity.Receipt) error {
	receiptModel, err := model.ReceiptFromEntity(receipt)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&model.ReceiptModel{}).
		Where("id = ? AND user_id = ?", receipt.ID, receipt.UserID).
		Select("*").
		Updates(receiptModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrReceiptNotFound
	}
	return nil
}

// Delete removes a receipt owned by the subject.
func (r *receiptRepository) Delete(ctx context.Context, id uuid.UUID, subjectID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, subjectID).
		Delete(&model.ReceiptModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrReceiptNotFound
	}
	return nil
}

// visibleTo builds the owner-or-shared visibility condition. Shared
// subjects are matched against the JSON-encoded shared_with list.
func (r *receiptRepository) visibleTo(subjectID string) *gorm.DB {
	return r.db.
		Where("user_id = ?", subjectID).
		Or("shared_with LIKE ?", fmt.Sprintf(`%%"%s"%%`, subjectID))
}

func toReceiptEntities(receiptModels []model.ReceiptModel) ([]*entity.Receipt, error) {
	receipts := make([]*entity.Receipt, len(receiptModels))
	for i := range receiptModels {
		receipt, err := receiptModels[i].ToEntity()
		if err != nil {
			return nil, err
		}
		receipts[i] = receipt
	}
	return receipts, nil
}
