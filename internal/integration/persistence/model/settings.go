package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budgetsnap/backend/internal/domain/entity"
)

// UserSettingsModel represents the user_settings table in the database.
// Budget limits are stored as a JSON object keyed by category name.
type UserSettingsModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Theme        string    `gorm:"type:varchar(10);not null;default:'light'"`
	Currency     string    `gorm:"type:varchar(3);not null;default:'USD'"`
	BudgetLimits string    `gorm:"type:jsonb;not null;default:'{}'"`
	EmailEnabled bool      `gorm:"not null;default:true"`
	PushEnabled  bool      `gorm:"not null;default:false"`
	BudgetAlerts bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the UserSettingsModel.
func (UserSettingsModel) TableName() string {
	return "user_settings"
}

// ToEntity converts a UserSettingsModel to a domain UserSettings entity.
func (m *UserSettingsModel) ToEntity() (*entity.UserSettings, error) {
	limits, err := decodeDecimalMap(m.BudgetLimits)
	if err != nil {
		return nil, fmt.Errorf("failed to decode budget limits: %w", err)
	}

	return &entity.UserSettings{
		ID:           m.ID,
		UserID:       m.UserID,
		Theme:        m.Theme,
		Currency:     m.Currency,
		BudgetLimits: limits,
		Notifications: entity.NotificationSettings{
			Email:        m.EmailEnabled,
			Push:         m.PushEnabled,
			BudgetAlerts: m.BudgetAlerts,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// UserSettingsFromEntity creates a UserSettingsModel from a domain entity.
func UserSettingsFromEntity(settings *entity.UserSettings) (*UserSettingsModel, error) {
	limitsJSON, err := encodeDecimalMap(settings.BudgetLimits)
	if err != nil {
		return nil, fmt.Errorf("failed to encode budget limits: %w", err)
	}

	return &UserSettingsModel{
		ID:           settings.ID,
		UserID:       settings.UserID,
		Theme:        settings.Theme,
		Currency:     settings.Currency,
		BudgetLimits: string(limitsJSON),
		EmailEnabled: settings.Notifications.Email,
		PushEnabled:  settings.Notifications.Push,
		BudgetAlerts: settings.Notifications.BudgetAlerts,
		CreatedAt:    settings.CreatedAt,
		UpdatedAt:    settings.UpdatedAt,
	}, nil
}
