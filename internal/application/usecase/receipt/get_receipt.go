package receipt

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/domain/entity"
	domainerror "github.com/budgetsnap/backend/internal/domain/error"
)

// GetReceiptInput represents the input for fetching a single receipt.
type GetReceiptInput struct {
	SubjectID string
	ReceiptID uuid.UUID
}

// GetReceiptUseCase handles fetching a single receipt.
type GetReceiptUseCase struct {
	receiptRepo adapter.ReceiptRepository
}

// NewGetReceiptUseCase creates a new GetReceiptUseCase instance.
func NewGetReceiptUseCase(receiptRepo adapter.ReceiptRepository) *GetReceiptUseCase {
	return &GetReceiptUseCase{receiptRepo: receiptRepo}
}

// Execute fetches the receipt when the subject owns it or appears in its
// sharing list. Anything else reads as not found.
func (uc *GetReceiptUseCase) Execute(ctx context.Context, input GetReceiptInput) (*entity.Receipt, error) {
	receipt, err := uc.receiptRepo.FindByID(ctx, input.ReceiptID, input.SubjectID)
	if err != nil {
		if errors.Is(err, domainerror.ErrReceiptNotFound) {
			return nil, domainerror.NewReceiptError(
				domainerror.ErrCodeReceiptNotFound,
				"receipt not found",
				domainerror.ErrReceiptNotFound,
			)
		}
		return nil, fmt.Errorf("failed to fetch receipt: %w", err)
	}
	return receipt, nil
}
