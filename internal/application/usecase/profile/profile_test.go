package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/budgetsnap/backend/internal/domain/entity"
	domainerror "github.com/budgetsnap/backend/internal/domain/error"
)

type memoryProfileRepo struct {
	profiles map[string]*entity.UserProfile
}

func newMemoryProfileRepo() *memoryProfileRepo {
	return &memoryProfileRepo{profiles: make(map[string]*entity.UserProfile)}
}

func (r *memoryProfileRepo) Create(_ context.Context, profile *entity.UserProfile) error {
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *memoryProfileRepo) FindByUser(_ context.Context, subjectID string) (*entity.UserProfile, error) {
	return r.profiles[subjectID], nil
}

func (r *memoryProfileRepo) Update(_ context.Context, profile *entity.UserProfile) error {
	r.profiles[profile.UserID] = profile
	return nil
}

func TestGetProfileLazyCreation(t *testing.T) {
	repo := newMemoryProfileRepo()
	uc := NewGetProfileUseCase(repo)

	profile, err := uc.Execute(context.Background(), GetProfileInput{
		SubjectID:   "user-1",
		Email:       "user@example.com",
		DisplayName: "User One",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Email != "user@example.com" || profile.DisplayName != "User One" {
		t.Errorf("profile not seeded from claims: %+v", profile)
	}
	if _, ok := repo.profiles["user-1"]; !ok {
		t.Error("profile was not persisted on first access")
	}

	// Second call returns the same profile, no duplicate creation.
	again, err := uc.Execute(context.Background(), GetProfileInput{SubjectID: "user-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.ID != profile.ID {
		t.Error("expected the existing profile on second access")
	}
}

func TestUpdateProfile(t *testing.T) {
	repo := newMemoryProfileRepo()
	existing := entity.NewUserProfile("user-1", "user@example.com", "User")
	repo.profiles["user-1"] = existing

	uc := NewUpdateProfileUseCase(repo)
	name := "Renamed"
	budget := decimal.NewFromInt(500)

	updated, err := uc.Execute(context.Background(), UpdateProfileInput{
		SubjectID:     "user-1",
		DisplayName:   &name,
		MonthlyBudget: &budget,
		BudgetTargets: map[string]decimal.Decimal{"food": decimal.NewFromInt(200)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.DisplayName != "Renamed" {
		t.Errorf("display name not updated: %q", updated.DisplayName)
	}
	if updated.MonthlyBudget == nil || !updated.MonthlyBudget.Equal(budget) {
		t.Errorf("monthly budget not updated: %v", updated.MonthlyBudget)
	}
	if !updated.BudgetTargets["food"].Equal(decimal.NewFromInt(200)) {
		t.Errorf("budget target not updated: %v", updated.BudgetTargets)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	repo := newMemoryProfileRepo()
	repo.profiles["user-1"] = entity.NewUserProfile("user-1", "user@example.com", "User")
	uc := NewUpdateProfileUseCase(repo)

	zero := decimal.Zero
	_, err := uc.Execute(context.Background(), UpdateProfileInput{SubjectID: "user-1", MonthlyBudget: &zero})
	if !errors.Is(err, domainerror.ErrInvalidBudget) {
		t.Errorf("zero budget should be rejected, got %v", err)
	}

	_, err = uc.Execute(context.Background(), UpdateProfileInput{SubjectID: "user-2"})
	if !errors.Is(err, domainerror.ErrProfileNotFound) {
		t.Errorf("missing profile should be not found, got %v", err)
	}
}
