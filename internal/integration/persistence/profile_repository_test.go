package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/budgetsnap/backend/internal/domain/entity"
)

func TestProfileRepositoryRoundTrip(t *testing.T) {
	repo := NewProfileRepository(testDB(t))
	ctx := context.Background()

	missing, err := repo.FindByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("FindByUser(missing) error = %v", err)
	}
	if missing != nil {
		t.Errorf("FindByUser(missing) = %v, want nil", missing)
	}

	profile := entity.NewUserProfile("user-1", "ana@example.com", "Ana")
	budget := decimal.RequireFromString("2000.00")
	profile.MonthlyBudget = &budget
	profile.BudgetTargets["food"] = decimal.RequireFromString("400.00")
	profile.Preferences["locale"] = "en-US"
	if err := repo.Create(ctx, profile); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repo.FindByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("FindByUser() error = %v", err)
	}
	if found.DisplayName != "Ana" || found.Email != "ana@example.com" {
		t.Errorf("profile = %+v", found)
	}
	if found.MonthlyBudget == nil || !found.MonthlyBudget.Equal(budget) {
		t.Errorf("MonthlyBudget = %v, want %s", found.MonthlyBudget, budget)
	}
	if !found.BudgetTargets["food"].Equal(decimal.RequireFromString("400.00")) {
		t.Errorf("BudgetTargets = %v", found.BudgetTargets)
	}
	if found.Preferences["locale"] != "en-US" {
		t.Errorf("Preferences = %v", found.Preferences)
	}

	found.DisplayName = "Ana Maria"
	delete(found.BudgetTargets, "food")
	if err := repo.Update(ctx, found); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	again, err := repo.FindByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("FindByUser() error = %v", err)
	}
	if again.DisplayName != "Ana Maria" || len(again.BudgetTargets) != 0 {
		t.Errorf("update not persisted: %+v", again)
	}
}

func TestSettingsRepositoryRoundTrip(t *testing.T) {
	repo := NewSettingsRepository(testDB(t))
	ctx := context.Background()

	missing, err := repo.FindByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("FindByUser(missing) error = %v", err)
	}
	if missing != nil {
		t.Errorf("FindByUser(missing) = %v, want nil", missing)
	}

	settings := entity.DefaultUserSettings("user-1")
	settings.BudgetLimits["food"] = decimal.RequireFromString("300.00")
	if err := repo.Create(ctx, settings); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repo.FindByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("FindByUser() error = %v", err)
	}
	if found.Theme != "light" || found.Currency != "USD" {
		t.Errorf("defaults = %+v", found)
	}
	if !found.Notifications.Email || found.Notifications.Push || !found.Notifications.BudgetAlerts {
		t.Errorf("Notifications = %+v", found.Notifications)
	}
	if !found.BudgetLimits["food"].Equal(decimal.RequireFromString("300.00")) {
		t.Errorf("BudgetLimits = %v", found.BudgetLimits)
	}

	found.Theme = "dark"
	found.Notifications.Push = true
	if err := repo.Update(ctx, found); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	again, err := repo.FindByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("FindByUser() error = %v", err)
	}
	if again.Theme != "dark" || !again.Notifications.Push {
		t.Errorf("update not persisted: %+v", again)
	}
}
