package receipt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/domain/entity"
	domainerror "github.com/budgetsnap/backend/internal/domain/error"
)

// UpdateReceiptInput represents the input for updating a receipt. Nil
// pointer fields are left unchanged.
type UpdateReceiptInput struct {
	SubjectID  string
	ReceiptID  uuid.UUID
	StoreName  *string
	Date       *time.Time
	Items      []ItemInput
	SharedWith []string
}

// UpdateReceiptUseCase handles updating a receipt. Only the owner may
// update; sharing participants get read access only.
type UpdateReceiptUseCase struct {
	receiptRepo adapter.ReceiptRepository
}

// NewUpdateReceiptUseCase creates a new UpdateReceiptUseCase instance.
func NewUpdateReceiptUseCase(receiptRepo adapter.ReceiptRepository) *UpdateReceiptUseCase {
	return &UpdateReceiptUseCase{receiptRepo: receiptRepo}
}

// Execute applies the update and recomputes the total when items change.
func (uc *UpdateReceiptUseCase) Execute(ctx context.Context, input UpdateReceiptInput) (*entity.Receipt, error) {
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

	if receipt.UserID != input.SubjectID {
		return nil, domainerror.NewReceiptError(
			domainerror.ErrCodeNotAuthorizedReceipt,
			"only the owner can modify a receipt",
			domainerror.ErrNotAuthorizedReceipt,
		)
	}

	if input.StoreName != nil {
		name := strings.TrimSpace(*input.StoreName)
		if name == "" {
			name = entity.UnknownStoreName
		}
		receipt.StoreName = name
	}
	if input.Date != nil {
		receipt.Date = *input.Date
	}
	if input.Items != nil {
		items, err := buildItems(input.Items)
		if err != nil {
			return nil, err
		}
		receipt.Items = items
		receipt.RecomputeTotal()
	}
	if input.SharedWith != nil {
		receipt.SharedWith = input.SharedWith
	}
	receipt.UpdatedAt = time.Now().UTC()

	if err := uc.receiptRepo.Update(ctx, receipt); err != nil {
		return nil, fmt.Errorf("failed to update receipt: %w", err)
	}
	return receipt, nil
}
