package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgetsnap/backend/internal/application/adapter"
	domainerror "github.com/budgetsnap/backend/internal/domain/error"
)

// MarkReadInput represents the input for marking a notification read.
type MarkReadInput struct {
	SubjectID      string
	NotificationID uuid.UUID
}

// MarkReadUseCase marks a single notification as read.
type MarkReadUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewMarkReadUseCase creates a new MarkReadUseCase instance.
func NewMarkReadUseCase(notificationRepo adapter.NotificationRepository) *MarkReadUseCase {
	return &MarkReadUseCase{notificationRepo: notificationRepo}
}

// Execute marks the notification read. Someone else's notification reads
// as not found.
func (uc *MarkReadUseCase) Execute(ctx context.Context, input MarkReadInput) error {
	updated, err := uc.notificationRepo.MarkRead(ctx, input.NotificationID, input.SubjectID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if updated == 0 {
		return domainerror.ErrNotificationNotFound
	}
	return nil
}

// MarkAllReadUseCase marks every unread notification of a user as read.
type MarkAllReadUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewMarkAllReadUseCase creates a new MarkAllReadUseCase instance.
func NewMarkAllReadUseCase(notificationRepo adapter.NotificationRepository) *MarkAllReadUseCase {
	return &MarkAllReadUseCase{notificationRepo: notificationRepo}
}

// Execute returns how many notifications were marked.
func (uc *MarkAllReadUseCase) Execute(ctx context.Context, subjectID string) (int64, error) {
	updated, err := uc.notificationRepo.MarkAllRead(ctx, subjectID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return updated, nil
}

// UnreadCountUseCase counts unread notifications.
type UnreadCountUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewUnreadCountUseCase creates a new UnreadCountUseCase instance.
func NewUnreadCountUseCase(notificationRepo adapter.NotificationRepository) *UnreadCountUseCase {
	return &UnreadCountUseCase{notificationRepo: notificationRepo}
}

// Execute returns the unread notification count.
func (uc *UnreadCountUseCase) Execute(ctx context.Context, subjectID string) (int64, error) {
	count, err := uc.notificationRepo.CountUnread(ctx, subjectID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
