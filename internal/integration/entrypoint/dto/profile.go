package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetsnap/backend/internal/domain/entity"
)

// UpdateProfileRequest represents the request body for profile update.
type UpdateProfileRequest struct {
	DisplayName   *string            `json:"display_name,omitempty" binding:"omitempty,min=1,max=100"`
	AvatarURL     *string            `json:"avatar_url,omitempty"`
	MonthlyBudget *float64           `json:"monthly_budget,omitempty"`
	BudgetTargets map[string]float64 `json:"budget_targets,omitempty"`
	Preferences   map[string]string  `json:"preferences,omitempty"`
}

// AvatarUploadRequest represents the request body for an avatar upload.
// Image carries a base64 payload, optionally with a data-URL prefix.
type AvatarUploadRequest struct {
	Image     string `json:"image" binding:"required"`
	ImageType string `json:"image_type,omitempty"`
}

// AvatarUploadResponse returns where the stored avatar can be fetched.
type AvatarUploadResponse struct {
	AvatarURL string `json:"avatar_url"`
}

// UpdateBudgetRequest represents the request body for budget updates.
type UpdateBudgetRequest struct {
	MonthlyBudget *float64           `json:"monthly_budget,omitempty"`
	BudgetTargets map[string]float64 `json:"budget_targets,omitempty"`
}

// ProfileResponse represents a user profile in API responses.
type ProfileResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"user_id"`
	Email         string             `json:"email"`
	DisplayName   string             `json:"display_name"`
	AvatarURL     *string            `json:"avatar_url,omitempty"`
	MonthlyBudget *float64           `json:"monthly_budget,omitempty"`
	BudgetTargets map[string]float64 `json:"budget_targets"`
	Preferences   map[string]string  `json:"preferences"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// NotificationSettingsDTO mirrors the notification channel toggles.
type NotificationSettingsDTO struct {
	Email        bool `json:"email"`
	Push         bool `json:"push"`
	BudgetAlerts bool `json:"budget_alerts"`
}

// UpdateSettingsRequest represents the request body for settings update.
type UpdateSettingsRequest struct {
	Theme         *string                  `json:"theme,omitempty" binding:"omitempty,oneof=light dark system"`
	Currency      *string                  `json:"currency,omitempty" binding:"omitempty,len=3"`
	BudgetLimits  map[string]float64       `json:"budget_limits,omitempty"`
	Notifications *NotificationSettingsDTO `json:"notifications,omitempty"`
}

// SettingsResponse represents user settings in API responses.
type SettingsResponse struct {
	ID            string                  `json:"id"`
	UserID        string                  `json:"user_id"`
	Theme         string                  `json:"theme"`
	Currency      string                  `json:"currency"`
	BudgetLimits  map[string]float64      `json:"budget_limits"`
	Notifications NotificationSettingsDTO `json:"notifications"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// ToProfileResponse converts a domain UserProfile entity to its DTO.
func ToProfileResponse(profile *entity.UserProfile) ProfileResponse {
	var budget *float64
	if profile.MonthlyBudget != nil {
		value := profile.MonthlyBudget.InexactFloat64()
		budget = &value
	}

	return ProfileResponse{
		ID:            profile.ID.String(),
		UserID:        profile.UserID,
		Email:         profile.Email,
		DisplayName:   profile.DisplayName,
		AvatarURL:     profile.AvatarURL,
		MonthlyBudget: budget,
		BudgetTargets: toFloatMap(profile.BudgetTargets),
		Preferences:   profile.Preferences,
		CreatedAt:     profile.CreatedAt,
		UpdatedAt:     profile.UpdatedAt,
	}
}

// ToSettingsResponse converts a domain UserSettings entity to its DTO.
func ToSettingsResponse(settings *entity.UserSettings) SettingsResponse {
	return SettingsResponse{
		ID:           settings.ID.String(),
		UserID:       settings.UserID,
		Theme:        settings.Theme,
		Currency:     settings.Currency,
		BudgetLimits: toFloatMap(settings.BudgetLimits),
		Notifications: NotificationSettingsDTO{
			Email:        settings.Notifications.Email,
			Push:         settings.Notifications.Push,
			BudgetAlerts: settings.Notifications.BudgetAlerts,
		},
		CreatedAt: settings.CreatedAt,
		UpdatedAt: settings.UpdatedAt,
	}
}

// ToDecimalMap converts request amounts to decimals.
func ToDecimalMap(values map[string]float64) map[string]decimal.Decimal {
	if values == nil {
		return nil
	}
	out := make(map[string]decimal.Decimal, len(values))
	for key, value := range values {
		out[key] = decimal.NewFromFloat(value)
	}
	return out
}

func toFloatMap(values map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(values))
	for key, value := range values {
		out[key] = value.InexactFloat64()
	}
	return out
}
