package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetsnap/backend/internal/domain/entity"
)

// UserProfileModel represents the user_profiles table in the database.
// Budget targets and preferences are stored as JSON documents.
type UserProfileModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID        string           `gorm:"type:varchar(64);not null;uniqueIndex"`
	Email         string           `gorm:"type:varchar(255);not null"`
	DisplayName   string           `gorm:"type:varchar(100);not null"`
	AvatarURL     *string          `gorm:"type:varchar(512)"`
	MonthlyBudget *decimal.Decimal `gorm:"type:decimal(12,2)"`
	BudgetTargets string           `gorm:"type:jsonb;not null;default:'{}'"`
	Preferences   string           `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt     time.Time        `gorm:"not null"`
	UpdatedAt     time.Time        `gorm:"not null"`
}

// TableName returns the table name for the UserProfileModel.
func (UserProfileModel) TableName() string {
	return "user_profiles"
}

// ToEntity converts a UserProfileModel to a domain UserProfile entity.
func (m *UserProfileModel) ToEntity() (*entity.UserProfile, error) {
	targets, err := decodeDecimalMap(m.BudgetTargets)
	if err != nil {
		return nil, fmt.Errorf("failed to decode budget targets: %w", err)
	}

	var preferences map[string]string
	if err := json.Unmarshal([]byte(m.Preferences), &preferences); err != nil {
		return nil, fmt.Errorf("failed to decode preferences: %w", err)
	}

	return &entity.UserProfile{
		ID:            m.ID,
		UserID:        m.UserID,
		Email:         m.Email,
		DisplayName:   m.DisplayName,
		AvatarURL:     m.AvatarURL,
		MonthlyBudget: m.MonthlyBudget,
		BudgetTargets: targets,
		Preferences:   preferences,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// UserProfileFromEntity creates a UserProfileModel from a domain entity.
func UserProfileFromEntity(profile *entity.UserProfile) (*UserProfileModel, error) {
	targetsJSON, err := encodeDecimalMap(profile.BudgetTargets)
	if err != nil {
		return nil, fmt.Errorf("failed to encode budget targets: %w", err)
	}

	preferences := profile.Preferences
	if preferences == nil {
		preferences = map[string]string{}
	}
	preferencesJSON, err := json.Marshal(preferences)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preferences: %w", err)
	}

	return &UserProfileModel{
		ID:            profile.ID,
		UserID:        profile.UserID,
		Email:         profile.Email,
		DisplayName:   profile.DisplayName,
		AvatarURL:     profile.AvatarURL,
		MonthlyBudget: profile.MonthlyBudget,
		BudgetTargets: string(targetsJSON),
		Preferences:   string(preferencesJSON),
		CreatedAt:     profile.CreatedAt,
		UpdatedAt:     profile.UpdatedAt,
	}, nil
}

func decodeDecimalMap(raw string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeDecimalMap(m map[string]decimal.Decimal) ([]byte, error) {
	if m == nil {
		m = map[string]decimal.Decimal{}
	}
	return json.Marshal(m)
}
