package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/budgetsnap/backend/internal/domain/entity"
)

// ReceiptFilter narrows receipt listings. Zero values mean "no filter".
type ReceiptFilter struct {
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Skip      int
	Limit     int
}

// ReceiptRepository defines the interface for receipt persistence operations.
type ReceiptRepository interface {
	// Create inserts a new receipt.
	Create(ctx context.Context, receipt *entity.Receipt) error

	// FindByID retrieves a receipt visible to the given subject, either as
	// owner or as a sharing participant.
	FindByID(ctx context.Context, id uuid.UUID, subjectID string) (*entity.Receipt, error)

	// FindByUser retrieves receipts owned by or shared with the subject,
	// newest first, honoring the filter.
	FindByUser(ctx context.Context, subjectID string, filter ReceiptFilter) ([]*entity.Receipt, error)

	// FindOwnedBetween retrieves receipts owned by the subject with dates in
	// [start, end]. Used by analytics and spending analysis.
	FindOwnedBetween(ctx context.Context, subjectID string, start, end time.Time) ([]*entity.Receipt, error)

	// Update persists changes to a receipt owned by the subject. Returns
	// ErrReceiptNotFound when no owned receipt matches.
	Update(ctx context.Context, receipt *entity.Receipt) error

	// Delete removes a receipt owned by the subject. Returns
	// ErrReceiptNotFound when no owned receipt matches.
	Delete(ctx context.Context, id uuid.UUID, subjectID string) error
}
