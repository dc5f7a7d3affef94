package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budgetsnap/backend/internal/domain/entity"
)

// TipModel represents the tips table in the database. Tags are stored as
// a JSON array. A NULL user_id marks a general tip.
type TipModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title        string    `gorm:"type:varchar(255);not null"`
	Content      string    `gorm:"type:text;not null"`
	Category     string    `gorm:"type:varchar(50);not null;index"`
	Tags         string    `gorm:"type:jsonb;not null;default:'[]'"`
	AIGenerated  bool      `gorm:"not null;default:false"`
	Personalized bool      `gorm:"not null;default:false"`
	UserID       *string   `gorm:"type:varchar(64);index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the TipModel.
func (TipModel) TableName() string {
	return "tips"
}

// ToEntity converts a TipModel to a domain Tip entity.
func (m *TipModel) ToEntity() (*entity.Tip, error) {
	var tags []string
	if err := json.Unmarshal([]byte(m.Tags), &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tip tags: %w", err)
	}

	return &entity.Tip{
		ID:           m.ID,
		Title:        m.Title,
		Content:      m.Content,
		Category:     m.Category,
		Tags:         tags,
		AIGenerated:  m.AIGenerated,
		Personalized: m.Personalized,
		UserID:       m.UserID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

// TipFromEntity creates a TipModel from a domain Tip entity.
func TipFromEntity(tip *entity.Tip) (*TipModel, error) {
	tags := tip.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tip tags: %w", err)
	}

	return &TipModel{
		ID:           tip.ID,
		Title:        tip.Title,
		Content:      tip.Content,
		Category:     tip.Category,
		Tags:         string(tagsJSON),
		AIGenerated:  tip.AIGenerated,
		Personalized: tip.Personalized,
		UserID:       tip.UserID,
		CreatedAt:    tip.CreatedAt,
		UpdatedAt:    tip.UpdatedAt,
	}, nil
}
