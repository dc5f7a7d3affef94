package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalImageStoreSaveAndDelete(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalImageStore() error = %v", err)
	}
	ctx := context.Background()

	ref, err := store.Save(ctx, "receipt-1.jpg", []byte("image-bytes"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if ref != "/uploads/receipt-1.jpg" {
		t.Errorf("Save() ref = %q, want %q", ref, "/uploads/receipt-1.jpg")
	}

	data, err := os.ReadFile(filepath.Join(store.baseDir, "receipt-1.jpg"))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("stored content = %q, want %q", data, "image-bytes")
	}

	// Delete accepts either the bare key or the saved reference.
	if err := store.Delete(ctx, ref); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.baseDir, "receipt-1.jpg")); !os.IsNotExist(err) {
		t.Errorf("file still exists after Delete()")
	}

	// Deleting a missing key is not an error.
	if err := store.Delete(ctx, "missing.jpg"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

func TestLocalImageStoreRejectsTraversal(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalImageStore() error = %v", err)
	}

	if _, err := store.Save(context.Background(), "..", []byte("x")); err == nil {
		t.Error("Save(..) expected error, got nil")
	}
}
