package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budgetsnap/backend/internal/domain/entity"
)

// NotificationRepository defines the interface for notification persistence operations.
type NotificationRepository interface {
	// Create inserts a new notification.
	Create(ctx context.Context, notification *entity.Notification) error

	// FindByUser retrieves the user's notifications, newest first. When
	// includeRead is false only unread notifications are returned.
	FindByUser(ctx context.Context, subjectID string, includeRead bool, skip, limit int) ([]*entity.Notification, error)

	// MarkRead marks a single notification as read. Returns the number of
	// notifications updated (0 or 1).
	MarkRead(ctx context.Context, id uuid.UUID, subjectID string) (int64, error)

	// MarkAllRead marks all of the user's unread notifications as read and
	// returns how many were updated.
	MarkAllRead(ctx context.Context, subjectID string) (int64, error)

	// CountUnread returns the number of unread notifications for the user.
	CountUnread(ctx context.Context, subjectID string) (int64, error)
}
