package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#3B82F6"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// BuiltinCategories is the fixed category set used when a user has no
// categories of their own and no system defaults are available.
var BuiltinCategories = []string{
	"food", "clothing", "recreation", "transportation", "housing",
	"utilities", "healthcare", "education", "personal", "other",
}

// Category represents a spending category. A nil UserID marks a
// system-wide default available to every user.
type Category struct {
	ID        uuid.UUID
	Name      string
	Color     string
	Icon      string
	Budget    *decimal.Decimal // Optional monthly budget limit for the category
	UserID    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new user-owned Category entity.
func NewCategory(name, color, icon string, budget *decimal.Decimal, userID string) *Category {
	now := time.Now().UTC()
	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Color:     color,
		Icon:      icon,
		Budget:    budget,
		UserID:    &userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewSystemCategory creates a Category not owned by any user.
func NewSystemCategory(name, color, icon string) *Category {
	now := time.Now().UTC()
	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Color:     color,
		Icon:      icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsSystem reports whether the category is a system-wide default.
func (c *Category) IsSystem() bool {
	return c.UserID == nil
}
