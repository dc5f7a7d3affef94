// Package notification contains notification-related use cases.
package notification

import (
	"context"
	"fmt"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/domain/entity"
)

// DefaultNotificationLimit caps uncapped listings.
const DefaultNotificationLimit = 50

// ListNotificationsInput represents the input for listing notifications.
type ListNotificationsInput struct {
	SubjectID   string
	IncludeRead bool
	Skip        int
	Limit       int
}

// ListNotificationsUseCase handles listing a user's notifications.
type ListNotificationsUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewListNotificationsUseCase creates a new ListNotificationsUseCase instance.
func NewListNotificationsUseCase(notificationRepo adapter.NotificationRepository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{notificationRepo: notificationRepo}
}

// Execute lists notifications, newest first.
func (uc *ListNotificationsUseCase) Execute(ctx context.Context, input ListNotificationsInput) ([]*entity.Notification, error) {
	limit := input.Limit
	if limit <= 0 || limit > DefaultNotificationLimit {
		limit = DefaultNotificationLimit
	}
	skip := input.Skip
	if skip < 0 {
		skip = 0
	}

	notifications, err := uc.notificationRepo.FindByUser(ctx, input.SubjectID, input.IncludeRead, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}
