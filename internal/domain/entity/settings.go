package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NotificationSettings controls which notification channels are active.
type NotificationSettings struct {
	Email        bool
	Push         bool
	BudgetAlerts bool
}

// UserSettings holds UI and alerting preferences for a user.
type UserSettings struct {
	ID            uuid.UUID
	UserID        string
	Theme         string
	Currency      string
	BudgetLimits  map[string]decimal.Decimal // Monthly limit by category name
	Notifications NotificationSettings
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DefaultUserSettings returns the settings written on a user's first read.
func DefaultUserSettings(userID string) *UserSettings {
	now := time.Now().UTC()
	return &UserSettings{
		ID:           uuid.New(),
		UserID:       userID,
		Theme:        "light",
		Currency:     "USD",
		BudgetLimits: make(map[string]decimal.Decimal),
		Notifications: NotificationSettings{
			Email:        true,
			Push:         false,
			BudgetAlerts: true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
