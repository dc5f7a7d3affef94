package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetsnap/backend/internal/domain/entity"
	domainerror "github.com/budgetsnap/backend/internal/domain/error"
)

func TestCategoryRepositoryFindByUser(t *testing.T) {
	repo := NewCategoryRepository(testDB(t))
	ctx := context.Background()

	system := entity.NewSystemCategory("food", "#3B82F6", "tag")
	budget := decimal.RequireFromString("150.00")
	owned := entity.NewCategory("Coffee", "#FF0000", "cup", &budget, "user-1")
	foreign := entity.NewCategory("Books", "#00FF00", "book", nil, "user-2")
	for _, category := range []*entity.Category{system, owned, foreign} {
		if err := repo.Create(ctx, category); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	withSystem, err := repo.FindByUser(ctx, "user-1", true)
	if err != nil {
		t.Fatalf("FindByUser(includeSystem) error = %v", err)
	}
	if len(withSystem) != 2 {
		t.Fatalf("len(withSystem) = %d, want 2", len(withSystem))
	}
	// Ordered by name: Coffee before food.
	if withSystem[0].Name != "Coffee" || withSystem[1].Name != "food" {
		t.Errorf("order = %q, %q; want Coffee, food", withSystem[0].Name, withSystem[1].Name)
	}
	if withSystem[0].Budget == nil || !withSystem[0].Budget.Equal(budget) {
		t.Errorf("Budget = %v, want %s", withSystem[0].Budget, budget)
	}

	ownOnly, err := repo.FindByUser(ctx, "user-1", false)
	if err != nil {
		t.Fatalf("FindByUser(ownOnly) error = %v", err)
	}
	if len(ownOnly) != 1 || ownOnly[0].Name != "Coffee" {
		t.Errorf("ownOnly = %d categories, want only Coffee", len(ownOnly))
	}
}

func TestCategoryRepositoryExistsByNameAndUser(t *testing.T) {
	repo := NewCategoryRepository(testDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, entity.NewSystemCategory("food", "#3B82F6", "tag")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, entity.NewCategory("Coffee", "#FF0000", "cup", nil, "user-1")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name      string
		category  string
		subjectID string
		want      bool
	}{
		{"own category", "Coffee", "user-1", true},
		{"system default", "food", "user-1", true},
		{"other user's category", "Coffee", "user-2", false},
		{"unknown", "Gadgets", "user-1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ExistsByNameAndUser(ctx, tt.category, tt.subjectID)
			if err != nil {
				t.Fatalf("ExistsByNameAndUser() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExistsByNameAndUser(%q, %q) = %v, want %v", tt.category, tt.subjectID, got, tt.want)
			}
		})
	}
}

func TestCategoryRepositoryUpdateAndDelete(t *testing.T) {
	repo := NewCategoryRepository(testDB(t))
	ctx := context.Background()

	category := entity.NewCategory("Coffee", "#FF0000", "cup", nil, "user-1")
	if err := repo.Create(ctx, category); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	budget := decimal.RequireFromString("80.00")
	category.Name = "Espresso"
	category.Budget = &budget
	if err := repo.Update(ctx, category); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := repo.FindByID(ctx, category.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Name != "Espresso" || found.Budget == nil || !found.Budget.Equal(budget) {
		t.Errorf("update not persisted: %+v", found)
	}

	if err := repo.Delete(ctx, category.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.FindByID(ctx, category.ID); !errors.Is(err, domainerror.ErrCategoryNotFound) {
		t.Errorf("FindByID() after delete error = %v, want ErrCategoryNotFound", err)
	}
	if err := repo.Delete(ctx, uuid.New()); !errors.Is(err, domainerror.ErrCategoryNotFound) {
		t.Errorf("Delete(unknown) error = %v, want ErrCategoryNotFound", err)
	}
}

func TestCategoryRepositoryCountSystem(t *testing.T) {
	repo := NewCategoryRepository(testDB(t))
	ctx := context.Background()

	count, err := repo.CountSystem(ctx)
	if err != nil {
		t.Fatalf("CountSystem() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountSystem() = %d, want 0", count)
	}

	for _, name := range []string{"food", "transportation"} {
		if err := repo.Create(ctx, entity.NewSystemCategory(name, "#3B82F6", "tag")); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if err := repo.Create(ctx, entity.NewCategory("Coffee", "#FF0000", "cup", nil, "user-1")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	count, err = repo.CountSystem(ctx)
	if err != nil {
		t.Fatalf("CountSystem() error = %v", err)
	}
	if count != 2 {
		t.Errorf("CountSystem() = %d, want 2", count)
	}
}
