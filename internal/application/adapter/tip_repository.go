package adapter

import (
	"context"

	"github.com/budgetsnap/backend/internal/domain/entity"
)

// TipRepository defines the interface for tip persistence operations.
type TipRepository interface {
	// CreateMany inserts a batch of tips.
	CreateMany(ctx context.Context, tips []*entity.Tip) error

	// FindGeneral retrieves general (non-personalized) tips, newest first,
	// optionally filtered by category.
	FindGeneral(ctx context.Context, category string, limit int) ([]*entity.Tip, error)

	// FindPersonalizedByTitle looks up a personalized tip for the user by
	// exact title. Returns nil when absent; used for deduplication.
	FindPersonalizedByTitle(ctx context.Context, subjectID, title string) (*entity.Tip, error)
}
