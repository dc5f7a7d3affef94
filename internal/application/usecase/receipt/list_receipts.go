package receipt

import (
	"context"
	"fmt"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/domain/entity"
)

// DefaultListLimit caps uncapped listings.
const DefaultListLimit = 100

// ListReceiptsInput represents the input for listing receipts.
type ListReceiptsInput struct {
	SubjectID string
	Filter    adapter.ReceiptFilter
}

// ListReceiptsUseCase handles listing receipts visible to a user.
type ListReceiptsUseCase struct {
	receiptRepo adapter.ReceiptRepository
}

// NewListReceiptsUseCase creates a new ListReceiptsUseCase instance.
func NewListReceiptsUseCase(receiptRepo adapter.ReceiptRepository) *ListReceiptsUseCase {
	return &ListReceiptsUseCase{receiptRepo: receiptRepo}
}

// Execute lists owned and shared receipts, newest first.
func (uc *ListReceiptsUseCase) Execute(ctx context.Context, input ListReceiptsInput) ([]*entity.Receipt, error) {
	filter := input.Filter
	if filter.Limit <= 0 || filter.Limit > DefaultListLimit {
		filter.Limit = DefaultListLimit
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}

	receipts, err := uc.receiptRepo.FindByUser(ctx, input.SubjectID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	return receipts, nil
}
