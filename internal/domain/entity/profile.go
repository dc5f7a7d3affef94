package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserProfile holds per-user budgeting data keyed by the opaque subject
// identifier. One profile exists per subject; it is created lazily on
// first authenticated access.
type UserProfile struct {
	ID            uuid.UUID
	UserID        string
	Email         string
	DisplayName   string
	AvatarURL     *string
	MonthlyBudget *decimal.Decimal
	BudgetTargets map[string]decimal.Decimal // Monthly targets by category name
	Preferences   map[string]string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUserProfile creates a profile with empty budget targets.
func NewUserProfile(userID, email, displayName string) *UserProfile {
	now := time.Now().UTC()
	return &UserProfile{
		ID:            uuid.New(),
		UserID:        userID,
		Email:         email,
		DisplayName:   displayName,
		BudgetTargets: make(map[string]decimal.Decimal),
		Preferences:   make(map[string]string),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
