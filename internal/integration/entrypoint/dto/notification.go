package dto

import (
	"time"

	"github.com/budgetsnap/backend/internal/domain/entity"
)

// NotificationResponse represents a notification in API responses.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      *string   `json:"link,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationListResponse represents the response for listing notifications.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

// UnreadCountResponse represents the response for the unread counter.
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

// MarkAllReadResponse represents the response for marking all notifications read.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// ToNotificationResponse converts a domain Notification entity to its DTO.
func ToNotificationResponse(notification *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        notification.ID.String(),
		Type:      string(notification.Type),
		Title:     notification.Title,
		Message:   notification.Message,
		Link:      notification.Link,
		ImageURL:  notification.ImageURL,
		Read:      notification.Read,
		CreatedAt: notification.CreatedAt,
	}
}

// ToNotificationListResponse converts notifications to a list response.
func ToNotificationListResponse(notifications []*entity.Notification, unread int64) NotificationListResponse {
	responses := make([]NotificationResponse, len(notifications))
	for i, notification := range notifications {
		responses[i] = ToNotificationResponse(notification)
	}
	return NotificationListResponse{
		Notifications: responses,
		UnreadCount:   unread,
	}
}
