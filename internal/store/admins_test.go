package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/joestump/noticeboard/internal/store"
	"github.com/joestump/noticeboard/internal/testutil"
)

func TestAdminStore_CreateAndGetByEmail(t *testing.T) {
	s := store.NewSQLAdminStore(testutil.NewTestDB(t))
	ctx := context.Background()

	a, err := s.Create(ctx, "a@b.com", "hash-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID == "" {
		t.Error("expected non-empty id")
	}

	got, err := s.GetByEmail(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != a.ID {
		t.Errorf("ID = %q, want %q", got.ID, a.ID)
	}
	if got.PasswordHash != "hash-1" {
		t.Errorf("PasswordHash = %q, want %q", got.PasswordHash, "hash-1")
	}
}

func TestAdminStore_Create_Duplicate(t *testing.T) {
	s := store.NewSQLAdminStore(testutil.NewTestDB(t))
	ctx := context.Background()

	if _, err := s.Create(ctx, "a@b.com", "hash-1"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := s.Create(ctx, "a@b.com", "hash-2")
	if !errors.Is(err, store.ErrDuplicateAdmin) {
		t.Errorf("Create(duplicate) = %v, want ErrDuplicateAdmin", err)
	}
}

func TestAdminStore_GetByEmail_NotFound(t *testing.T) {
	s := store.NewSQLAdminStore(testutil.NewTestDB(t))

	_, err := s.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByEmail(nonexistent) = %v, want ErrNotFound", err)
	}
}

func TestAdminStore_UpdatePasswordHash(t *testing.T) {
	s := store.NewSQLAdminStore(testutil.NewTestDB(t))
	ctx := context.Background()

	a, err := s.Create(ctx, "a@b.com", "hash-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.UpdatePasswordHash(ctx, a.ID, "hash-2"); err != nil {
		t.Fatalf("UpdatePasswordHash: %v", err)
	}

	got, err := s.GetByEmail(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.PasswordHash != "hash-2" {
		t.Errorf("PasswordHash = %q, want %q", got.PasswordHash, "hash-2")
	}

	err = s.UpdatePasswordHash(ctx, "missing-id", "hash-3")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UpdatePasswordHash(missing) = %v, want ErrNotFound", err)
	}
}
