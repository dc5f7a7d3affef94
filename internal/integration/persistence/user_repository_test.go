package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/budgetsnap/backend/internal/domain/entity"
	domainerror "github.com/budgetsnap/backend/internal/domain/error"
)

func TestUserRepositoryRoundTrip(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	user := entity.NewUser("ana@example.com", "Ana", "hashed-password")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	byID, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if byID.Email != "ana@example.com" || byID.PasswordHash != "hashed-password" {
		t.Errorf("user = %+v", byID)
	}

	byEmail, err := repo.FindByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("FindByEmail() ID = %s, want %s", byEmail.ID, user.ID)
	}

	if _, err := repo.FindByID(ctx, uuid.New()); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("FindByID(unknown) error = %v, want ErrUserNotFound", err)
	}
	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("FindByEmail(unknown) error = %v, want ErrUserNotFound", err)
	}

	exists, err := repo.ExistsByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("ExistsByEmail() error = %v", err)
	}
	if !exists {
		t.Error("ExistsByEmail(ana) = false, want true")
	}
	exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("ExistsByEmail() error = %v", err)
	}
	if exists {
		t.Error("ExistsByEmail(nobody) = true, want false")
	}
}

func TestTokenRepositoryLifecycle(t *testing.T) {
	repo := NewTokenRepository(testDB(t))
	ctx := context.Background()
	userID := uuid.New()

	if err := repo.Save(ctx, userID, "refresh-abc", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	valid, err := repo.IsValid(ctx, "refresh-abc")
	if err != nil {
		t.Fatalf("IsValid() error = %v", err)
	}
	if !valid {
		t.Error("IsValid(fresh) = false, want true")
	}

	// Unknown tokens are invalid, not an error.
	valid, err = repo.IsValid(ctx, "unknown-token")
	if err != nil {
		t.Fatalf("IsValid(unknown) error = %v", err)
	}
	if valid {
		t.Error("IsValid(unknown) = true, want false")
	}

	if err := repo.Invalidate(ctx, "refresh-abc"); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	valid, err = repo.IsValid(ctx, "refresh-abc")
	if err != nil {
		t.Fatalf("IsValid() error = %v", err)
	}
	if valid {
		t.Error("IsValid(invalidated) = true, want false")
	}
}

func TestTokenRepositoryExpiredToken(t *testing.T) {
	repo := NewTokenRepository(testDB(t))
	ctx := context.Background()

	if err := repo.Save(ctx, uuid.New(), "refresh-old", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	valid, err := repo.IsValid(ctx, "refresh-old")
	if err != nil {
		t.Fatalf("IsValid() error = %v", err)
	}
	if valid {
		t.Error("IsValid(expired) = true, want false")
	}
}
