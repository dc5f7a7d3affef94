package receipt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/budgetsnap/backend/internal/application/adapter"
	domainerror "github.com/budgetsnap/backend/internal/domain/error"
)

// DeleteReceiptInput represents the input for deleting a receipt.
type DeleteReceiptInput struct {
	SubjectID string
	ReceiptID uuid.UUID
}

// DeleteReceiptUseCase handles deleting a receipt. Owner only.
type DeleteReceiptUseCase struct {
	receiptRepo adapter.ReceiptRepository
	imageStore  adapter.ImageStore
	logger      *slog.Logger
}

// NewDeleteReceiptUseCase creates a new DeleteReceiptUseCase instance.
func NewDeleteReceiptUseCase(receiptRepo adapter.ReceiptRepository, imageStore adapter.ImageStore, logger *slog.Logger) *DeleteReceiptUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeleteReceiptUseCase{receiptRepo: receiptRepo, imageStore: imageStore, logger: logger}
}

// Execute deletes the receipt and its stored image, if any.
func (uc *DeleteReceiptUseCase) Execute(ctx context.Context, input DeleteReceiptInput) error {
	receipt, err := uc.receiptRepo.FindByID(ctx, input.ReceiptID, input.SubjectID)
	if err != nil {
		if errors.Is(err, domainerror.ErrReceiptNotFound) {
			return domainerror.NewReceiptError(
				domainerror.ErrCodeReceiptNotFound,
				"receipt not found",
				domainerror.ErrReceiptNotFound,
			)
		}
		return fmt.Errorf("failed to fetch receipt: %w", err)
	}
	if receipt.UserID != input.SubjectID {
		return domainerror.NewReceiptError(
			domainerror.ErrCodeNotAuthorizedReceipt,
			"only the owner can delete a receipt",
			domainerror.ErrNotAuthorizedReceipt,
		)
	}

	if err := uc.receiptRepo.Delete(ctx, input.ReceiptID, input.SubjectID); err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}

	if receipt.ImageURL != nil {
		key := imageKeyFromURL(*receipt.ImageURL)
		if err := uc.imageStore.Delete(ctx, key); err != nil {
			uc.logger.Warn("failed to delete receipt image", "receipt_id", input.ReceiptID, "error", err)
		}
	}
	return nil
}

// imageKeyFromURL recovers the storage key from a stored reference.
func imageKeyFromURL(url string) string {
	if idx := strings.LastIndex(url, "/"); idx >= 0 {
		return url[idx+1:]
	}
	return url
}
