package entity

import (
	"time"

	"github.com/google/uuid"
)

// Tip represents a money-saving tip, either AI-generated or curated.
type Tip struct {
	ID           uuid.UUID
	Title        string
	Content      string
	Category     string
	Tags         []string
	AIGenerated  bool
	Personalized bool
	UserID       *string // Absent for general tips
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewTip creates a new general Tip entity.
func NewTip(title, content, category string, tags []string, aiGenerated bool) *Tip {
	now := time.Now().UTC()
	return &Tip{
		ID:          uuid.New(),
		Title:       title,
		Content:     content,
		Category:    category,
		Tags:        tags,
		AIGenerated: aiGenerated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewPersonalizedTip creates a Tip scoped to a single user.
func NewPersonalizedTip(userID, title, content, category string, tags []string) *Tip {
	tip := NewTip(title, content, category, tags, true)
	tip.Personalized = true
	tip.UserID = &userID
	return tip
}
