package brandadminstore_test

import (
	"testing"

	brandadminstore "github.com/autoatlas-mx/autoatlas/internal/app/store/brandadmins"
	userstore "github.com/autoatlas-mx/autoatlas/internal/app/store/users"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/autoatlas-mx/autoatlas/internal/testutil"
)

func TestStore_Assign_UnknownEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := brandadminstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	brand := fixtures.CreateBrand(ctx, "Kia", true)
	admin := fixtures.CreateUser(ctx, "Admin", "admin@example.com", models.RoleAdmin)

	_, err := store.Assign(ctx, "nadie@example.com", brand.ID, brandadminstore.OnConflictReject, admin.ID)
	if err != brandadminstore.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}

	// Nothing may be written on the not-found path.
	admins, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(admins) != 0 {
		t.Errorf("expected no delegations, got %d", len(admins))
	}
}

func TestStore_Assign_PromotesRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := brandadminstore.New(db)
	users := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	brand := fixtures.CreateBrand(ctx, "Kia", true)
	admin := fixtures.CreateUser(ctx, "Admin", "admin@example.com", models.RoleAdmin)
	target := fixtures.CreateUser(ctx, "Diana", "diana@example.com", models.RoleUser)

	got, err := store.Assign(ctx, "diana@example.com", brand.ID, brandadminstore.OnConflictReject, admin.ID)
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if got.ID != target.ID {
		t.Error("expected the existing user record")
	}

	reloaded, err := users.GetByID(ctx, target.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if reloaded.Role != models.RoleBrandAdmin {
		t.Errorf("expected role brand_admin, got %q", reloaded.Role)
	}

	ba, err := store.GetByUserID(ctx, target.ID)
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	if ba == nil || ba.BrandID != brand.ID {
		t.Errorf("expected delegation to brand %s, got %+v", brand.ID.Hex(), ba)
	}
}

func TestStore_Assign_ConflictReject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := brandadminstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	kia := fixtures.CreateBrand(ctx, "Kia", true)
	mazda := fixtures.CreateBrand(ctx, "Mazda", true)
	admin := fixtures.CreateUser(ctx, "Admin", "admin@example.com", models.RoleAdmin)
	fixtures.CreateUser(ctx, "Diana", "diana@example.com", models.RoleUser)

	if _, err := store.Assign(ctx, "diana@example.com", kia.ID, brandadminstore.OnConflictReject, admin.ID); err != nil {
		t.Fatalf("first Assign failed: %v", err)
	}

	_, err := store.Assign(ctx, "diana@example.com", mazda.ID, brandadminstore.OnConflictReject, admin.ID)
	if err != brandadminstore.ErrAlreadyDelegated {
		t.Errorf("expected ErrAlreadyDelegated, got %v", err)
	}

	// The original link must be untouched.
	admins, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(admins) != 1 {
		t.Fatalf("expected one delegation, got %d", len(admins))
	}
	if admins[0].BrandID != kia.ID {
		t.Error("expected delegation still pointing at the first brand")
	}
}

func TestStore_Assign_ConflictOverwrite(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := brandadminstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	kia := fixtures.CreateBrand(ctx, "Kia", true)
	mazda := fixtures.CreateBrand(ctx, "Mazda", true)
	admin := fixtures.CreateUser(ctx, "Admin", "admin@example.com", models.RoleAdmin)
	diana := fixtures.CreateUser(ctx, "Diana", "diana@example.com", models.RoleUser)

	if _, err := store.Assign(ctx, "diana@example.com", kia.ID, brandadminstore.OnConflictReject, admin.ID); err != nil {
		t.Fatalf("first Assign failed: %v", err)
	}
	if _, err := store.Assign(ctx, "diana@example.com", mazda.ID, brandadminstore.OnConflictOverwrite, admin.ID); err != nil {
		t.Fatalf("overwrite Assign failed: %v", err)
	}

	ba, err := store.GetByUserID(ctx, diana.ID)
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	if ba == nil || ba.BrandID != mazda.ID {
		t.Errorf("expected delegation repointed at the second brand, got %+v", ba)
	}

	// Still exactly one delegation per user.
	admins, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(admins) != 1 {
		t.Errorf("expected one delegation, got %d", len(admins))
	}
}

func TestStore_Remove_Demotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := brandadminstore.New(db)
	users := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	brand := fixtures.CreateBrand(ctx, "Kia", true)
	admin := fixtures.CreateUser(ctx, "Admin", "admin@example.com", models.RoleAdmin)
	diana := fixtures.CreateUser(ctx, "Diana", "diana@example.com", models.RoleUser)

	if _, err := store.Assign(ctx, "diana@example.com", brand.ID, brandadminstore.OnConflictReject, admin.ID); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if err := store.Remove(ctx, diana.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	ba, err := store.GetByUserID(ctx, diana.ID)
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	if ba != nil {
		t.Error("expected delegation removed")
	}

	reloaded, err := users.GetByID(ctx, diana.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if reloaded.Role != models.RoleUser {
		t.Errorf("expected role demoted to user, got %q", reloaded.Role)
	}
}
