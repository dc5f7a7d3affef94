package notification

import (
	"context"
	"fmt"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/domain/entity"
)

// NotifyReceiptAddedUseCase creates the in-app notification for a freshly
// persisted receipt.
type NotifyReceiptAddedUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewNotifyReceiptAddedUseCase creates a new NotifyReceiptAddedUseCase instance.
func NewNotifyReceiptAddedUseCase(notificationRepo adapter.NotificationRepository) *NotifyReceiptAddedUseCase {
	return &NotifyReceiptAddedUseCase{notificationRepo: notificationRepo}
}

// Execute creates the notification.
func (uc *NotifyReceiptAddedUseCase) Execute(ctx context.Context, receipt *entity.Receipt) error {
	notification := entity.NewNotification(
		receipt.UserID,
		entity.NotificationTypeReceipt,
		fmt.Sprintf("Receipt Added: %s", receipt.StoreName),
		fmt.Sprintf("Your receipt from %s for $%s was added successfully.", receipt.StoreName, receipt.TotalAmount.StringFixed(2)),
	)
	link := "/receipts/" + receipt.ID.String()
	notification.Link = &link

	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to create receipt notification: %w", err)
	}
	return nil
}
