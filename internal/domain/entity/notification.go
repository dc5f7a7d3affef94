package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationTypeReceipt NotificationType = "receipt"
	NotificationTypeBudget  NotificationType = "budget"
	NotificationTypeTip     NotificationType = "tip"
	NotificationTypeAlert   NotificationType = "alert"
	NotificationTypeSystem  NotificationType = "system"
)

// Notification represents an in-app notification for a user.
type Notification struct {
	ID        uuid.UUID
	UserID    string
	Type      NotificationType
	Title     string
	Message   string
	Link      *string
	ImageURL  *string
	Read      bool
	CreatedAt time.Time
}

// NewNotification creates a new unread Notification entity.
func NewNotification(userID string, notifType NotificationType, title, message string) *Notification {
	return &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}

// IsValidNotificationType reports whether the given type is one of the
// enumerated notification types.
func IsValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationTypeReceipt, NotificationTypeBudget, NotificationTypeTip,
		NotificationTypeAlert, NotificationTypeSystem:
		return true
	}
	return false
}
