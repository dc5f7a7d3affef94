package error

import "errors"

// Notification domain errors.
var (
	// ErrNotificationNotFound is returned when a notification does not exist
	// or belongs to another user.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrInvalidNotificationType is returned for types outside the enumerated set.
	ErrInvalidNotificationType = errors.New("invalid notification type")
)

// Profile and settings domain errors.
var (
	// ErrProfileNotFound is returned when a profile lookup misses and lazy
	// creation is not applicable.
	ErrProfileNotFound = errors.New("user profile not found")

	// ErrInvalidBudget is returned when a budget amount is zero or negative.
	ErrInvalidBudget = errors.New("budget amount must be greater than zero")
)
