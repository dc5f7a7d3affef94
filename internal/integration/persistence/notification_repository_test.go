package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/budgetsnap/backend/internal/domain/entity"
)

func TestNotificationRepositoryFindByUser(t *testing.T) {
	repo := NewNotificationRepository(testDB(t))
	ctx := context.Background()

	first := entity.NewNotification("user-1", entity.NotificationTypeReceipt, "Receipt Added: Corner Market", "Total: $9.00")
	second := entity.NewNotification("user-1", entity.NotificationTypeBudget, "Budget Alert", "food at 92% of limit")
	second.CreatedAt = first.CreatedAt.Add(1)
	other := entity.NewNotification("user-2", entity.NotificationTypeSystem, "Welcome", "hello")
	for _, notification := range []*entity.Notification{first, second, other} {
		if err := repo.Create(ctx, notification); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	notifications, err := repo.FindByUser(ctx, "user-1", true, 0, 0)
	if err != nil {
		t.Fatalf("FindByUser() error = %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("len(notifications) = %d, want 2", len(notifications))
	}
	if notifications[0].Title != "Budget Alert" {
		t.Errorf("first = %q, want newest first", notifications[0].Title)
	}
}

func TestNotificationRepositoryMarkRead(t *testing.T) {
	repo := NewNotificationRepository(testDB(t))
	ctx := context.Background()

	notification := entity.NewNotification("user-1", entity.NotificationTypeReceipt, "Receipt Added", "msg")
	if err := repo.Create(ctx, notification); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Wrong owner updates nothing.
	updated, err := repo.MarkRead(ctx, notification.ID, "user-2")
	if err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if updated != 0 {
		t.Errorf("MarkRead() by non-owner = %d, want 0", updated)
	}

	updated, err = repo.MarkRead(ctx, notification.ID, "user-1")
	if err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if updated != 1 {
		t.Errorf("MarkRead() = %d, want 1", updated)
	}

	unread, err := repo.FindByUser(ctx, "user-1", false, 0, 0)
	if err != nil {
		t.Fatalf("FindByUser(unread) error = %v", err)
	}
	if len(unread) != 0 {
		t.Errorf("unread after MarkRead = %d, want 0", len(unread))
	}

	updated, err = repo.MarkRead(ctx, uuid.New(), "user-1")
	if err != nil {
		t.Fatalf("MarkRead(unknown) error = %v", err)
	}
	if updated != 0 {
		t.Errorf("MarkRead(unknown) = %d, want 0", updated)
	}
}

func TestNotificationRepositoryMarkAllReadAndCount(t *testing.T) {
	repo := NewNotificationRepository(testDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.Create(ctx, entity.NewNotification("user-1", entity.NotificationTypeTip, "Tip", "msg")); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if err := repo.Create(ctx, entity.NewNotification("user-2", entity.NotificationTypeTip, "Tip", "msg")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	count, err := repo.CountUnread(ctx, "user-1")
	if err != nil {
		t.Fatalf("CountUnread() error = %v", err)
	}
	if count != 3 {
		t.Errorf("CountUnread() = %d, want 3", count)
	}

	updated, err := repo.MarkAllRead(ctx, "user-1")
	if err != nil {
		t.Fatalf("MarkAllRead() error = %v", err)
	}
	if updated != 3 {
		t.Errorf("MarkAllRead() = %d, want 3", updated)
	}

	count, err = repo.CountUnread(ctx, "user-1")
	if err != nil {
		t.Fatalf("CountUnread() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountUnread() after MarkAllRead = %d, want 0", count)
	}

	// Other users' notifications are untouched.
	count, err = repo.CountUnread(ctx, "user-2")
	if err != nil {
		t.Fatalf("CountUnread(user-2) error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountUnread(user-2) = %d, want 1", count)
	}
}
