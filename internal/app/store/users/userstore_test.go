package userstore_test

import (
	"testing"
	"time"

	userstore "github.com/autoatlas-mx/autoatlas/internal/app/store/users"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/autoatlas-mx/autoatlas/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Upsert_CreatesWithDefaultRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Upsert(ctx, "google-123", "Nuevo@Example.com", "Nuevo Usuario", "https://img.example.com/a.png")
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if u.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if u.Role != models.RoleUser {
		t.Errorf("expected role %q, got %q", models.RoleUser, u.Role)
	}
	if u.Email != "nuevo@example.com" {
		t.Errorf("expected normalized email, got %q", u.Email)
	}
	if u.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Upsert_UpdateKeepsRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Upsert(ctx, "google-456", "admin@example.com", "Admin", "")
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.SetRole(ctx, created.ID, models.RoleAdmin); err != nil {
		t.Fatalf("SetRole failed: %v", err)
	}

	// Signing in again refreshes profile fields but never the role.
	again, err := store.Upsert(ctx, "google-456", "admin@example.com", "Admin Renamed", "")
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if again.ID != created.ID {
		t.Error("expected the same user record")
	}
	if again.Role != models.RoleAdmin {
		t.Errorf("expected role to survive re-login, got %q", again.Role)
	}
	if again.Name != "Admin Renamed" {
		t.Errorf("expected refreshed name, got %q", again.Name)
	}
}

func TestStore_SetRole_Invalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ana", "ana@example.com", models.RoleUser)

	if err := store.SetRole(ctx, u.ID, "super_duper_admin"); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestStore_SetRole_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.SetRole(ctx, primitive.NewObjectID(), models.RoleAdmin)
	if err != userstore.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestStore_UpdateProfile_Partial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ana", "ana@example.com", models.RoleUser)

	city := "Guadalajara"
	if err := store.UpdateProfile(ctx, u.ID, userstore.ProfileUpdate{City: &city}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.City != "Guadalajara" {
		t.Errorf("expected city updated, got %q", got.City)
	}
	if got.Name != "Ana" {
		t.Errorf("expected name untouched, got %q", got.Name)
	}
}

func TestStore_UpdateProfile_EmptyIsNoOp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ana", "ana@example.com", models.RoleUser)

	if err := store.UpdateProfile(ctx, u.ID, userstore.ProfileUpdate{}); err != nil {
		t.Fatalf("empty UpdateProfile should succeed, got %v", err)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	// BSON stores times at millisecond precision.
	if !got.UpdatedAt.Equal(u.UpdatedAt.Truncate(time.Millisecond)) {
		t.Error("expected UpdatedAt untouched by empty update")
	}
}

func TestStore_GetByAuthID_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.GetByAuthID(ctx, "does-not-exist")
	if err != nil {
		t.Fatalf("GetByAuthID failed: %v", err)
	}
	if u != nil {
		t.Error("expected nil user for unknown auth id")
	}
}
