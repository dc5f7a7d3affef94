package dto

import (
	"time"

	"github.com/budgetsnap/backend/internal/domain/entity"
)

// TipResponse represents a money-saving tip in API responses.
type TipResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Category     string    `json:"category"`
	Tags         []string  `json:"tags,omitempty"`
	AIGenerated  bool      `json:"ai_generated"`
	Personalized bool      `json:"personalized"`
	CreatedAt    time.Time `json:"created_at"`
}

// TipListResponse represents the response for listing tips.
type TipListResponse struct {
	Tips []TipResponse `json:"tips"`
}

// ToTipResponse converts a domain Tip entity to a TipResponse DTO.
func ToTipResponse(tip *entity.Tip) TipResponse {
	return TipResponse{
		ID:           tip.ID.String(),
		Title:        tip.Title,
		Content:      tip.Content,
		Category:     tip.Category,
		Tags:         tip.Tags,
		AIGenerated:  tip.AIGenerated,
		Personalized: tip.Personalized,
		CreatedAt:    tip.CreatedAt,
	}
}

// ToTipListResponse converts tips to a TipListResponse.
func ToTipListResponse(tips []*entity.Tip) TipListResponse {
	responses := make([]TipResponse, len(tips))
	for i, tip := range tips {
		responses[i] = ToTipResponse(tip)
	}
	return TipListResponse{
		Tips: responses,
	}
}
