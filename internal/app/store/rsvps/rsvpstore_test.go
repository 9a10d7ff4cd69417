package rsvpstore_test

import (
	"testing"

	rsvpstore "github.com/autoatlas-mx/autoatlas/internal/app/store/rsvps"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/indexes"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/autoatlas-mx/autoatlas/internal/testutil"
)

func TestStore_Create_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rsvpstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Duplicate detection rides on the unique (event_id, user_id) index.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	event := fixtures.CreateEvent(ctx, "Expo", "2099-05-01", nil)
	user := fixtures.CreateUser(ctx, "Diana", "diana@example.com", models.RoleUser)

	if _, err := store.Create(ctx, event.ID, user.ID); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, event.ID, user.ID); err != rsvpstore.ErrAlreadyRegistered {
		t.Errorf("expected ErrAlreadyRegistered, got %v", err)
	}

	n, err := store.CountByEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("CountByEvent failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected a single RSVP, got %d", n)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rsvpstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	event := fixtures.CreateEvent(ctx, "Expo", "2099-05-01", nil)
	user := fixtures.CreateUser(ctx, "Diana", "diana@example.com", models.RoleUser)

	if _, err := store.Create(ctx, event.ID, user.ID); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.Delete(ctx, event.ID, user.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}

	// Cancelling again finds nothing.
	n, err = store.Delete(ctx, event.ID, user.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 deleted on repeat, got %d", n)
	}

	ok, err := store.Exists(ctx, event.ID, user.ID)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if ok {
		t.Error("expected RSVP gone")
	}
}
