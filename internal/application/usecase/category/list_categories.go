package category

import (
	"context"
	"fmt"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	SubjectID     string
	IncludeSystem bool
}

// ListCategoriesUseCase handles listing a user's categories together with
// the system-wide defaults.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryRepo: categoryRepo}
}

// Execute lists categories ordered by name.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) ([]*entity.Category, error) {
	categories, err := uc.categoryRepo.FindByUser(ctx, input.SubjectID, input.IncludeSystem)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
