package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budgetsnap/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create inserts a new category.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByUser retrieves the user's categories, optionally including the
	// system-wide defaults, ordered by name.
	FindByUser(ctx context.Context, subjectID string, includeSystem bool) ([]*entity.Category, error)

	// ExistsByNameAndUser checks if a category with the given name exists in
	// the user's scope.
	ExistsByNameAndUser(ctx context.Context, name, subjectID string) (bool, error)

	// Update persists changes to an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountSystem returns the number of system-wide default categories.
	// Used to decide whether seeding is needed at startup.
	CountSystem(ctx context.Context) (int64, error)
}
