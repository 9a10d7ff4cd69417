package brandadmins_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/autoatlas-mx/autoatlas/internal/app/features/brandadmins"
	brandadminstore "github.com/autoatlas-mx/autoatlas/internal/app/store/brandadmins"
	brandstore "github.com/autoatlas-mx/autoatlas/internal/app/store/brands"
	userstore "github.com/autoatlas-mx/autoatlas/internal/app/store/users"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/autoatlas-mx/autoatlas/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*brandadmins.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := brandadmins.NewHandler(brandadminstore.New(db), brandstore.New(db), zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func TestHandleAssign_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	db := fixtures.DB()
	brand := fixtures.CreateBrand(ctx, "Kia", true)
	target := fixtures.CreateUser(ctx, "Diana", "diana@example.com", models.RoleUser)

	body := `{"email":"diana@example.com","brand_id":"` + brand.ID.Hex() + `"}`
	req := testutil.NewJSONRequest("POST", "/brand-admins", body)
	req = testutil.WithUser(req, testutil.AdminUser())

	rec := httptest.NewRecorder()
	handler.HandleAssign(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var resp struct {
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.UserID != target.ID.Hex() {
		t.Errorf("expected user id %s, got %s", target.ID.Hex(), resp.UserID)
	}

	reloaded, err := userstore.New(db).GetByID(ctx, target.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if reloaded.Role != models.RoleBrandAdmin {
		t.Errorf("expected role brand_admin, got %q", reloaded.Role)
	}
}

func TestHandleAssign_UnknownEmail(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	brand := fixtures.CreateBrand(ctx, "Kia", true)

	body := `{"email":"nadie@example.com","brand_id":"` + brand.ID.Hex() + `"}`
	req := testutil.NewJSONRequest("POST", "/brand-admins", body)
	req = testutil.WithUser(req, testutil.AdminUser())

	rec := httptest.NewRecorder()
	handler.HandleAssign(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestHandleAssign_MissingBrand(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Diana", "diana@example.com", models.RoleUser)

	body := `{"email":"diana@example.com","brand_id":"507f1f77bcf86cd799439011"}`
	req := testutil.NewJSONRequest("POST", "/brand-admins", body)
	req = testutil.WithUser(req, testutil.AdminUser())

	rec := httptest.NewRecorder()
	handler.HandleAssign(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestHandleAssign_Conflict(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	kia := fixtures.CreateBrand(ctx, "Kia", true)
	mazda := fixtures.CreateBrand(ctx, "Mazda", true)
	diana := fixtures.CreateUser(ctx, "Diana", "diana@example.com", models.RoleUser)

	body := `{"email":"diana@example.com","brand_id":"` + kia.ID.Hex() + `"}`
	req := testutil.NewJSONRequest("POST", "/brand-admins", body)
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	handler.HandleAssign(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first assign failed: %d %s", rec.Code, rec.Body.String())
	}

	// Default mode rejects a second delegation.
	body = `{"email":"diana@example.com","brand_id":"` + mazda.ID.Hex() + `"}`
	req = testutil.NewJSONRequest("POST", "/brand-admins", body)
	req = testutil.WithUser(req, testutil.AdminUser())
	rec = httptest.NewRecorder()
	handler.HandleAssign(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, rec.Code)
	}

	// Overwrite repoints it.
	body = `{"email":"diana@example.com","brand_id":"` + mazda.ID.Hex() + `","on_conflict":"overwrite"}`
	req = testutil.NewJSONRequest("POST", "/brand-admins", body)
	req = testutil.WithUser(req, testutil.AdminUser())
	rec = httptest.NewRecorder()
	handler.HandleAssign(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("overwrite assign failed: %d %s", rec.Code, rec.Body.String())
	}

	ba, err := handler.BrandAdmins.GetByUserID(ctx, diana.ID)
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	if ba == nil || ba.BrandID != mazda.ID {
		t.Errorf("expected delegation repointed, got %+v", ba)
	}
}

func TestHandleRemove_Demotes(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	db := fixtures.DB()
	brand := fixtures.CreateBrand(ctx, "Kia", true)
	diana := fixtures.CreateUser(ctx, "Diana", "diana@example.com", models.RoleUser)

	admin := testutil.AdminUser()
	body := `{"email":"diana@example.com","brand_id":"` + brand.ID.Hex() + `"}`
	req := testutil.NewJSONRequest("POST", "/brand-admins", body)
	req = testutil.WithUser(req, admin)
	rec := httptest.NewRecorder()
	handler.HandleAssign(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("assign failed: %d %s", rec.Code, rec.Body.String())
	}

	req = testutil.NewRequest("DELETE", "/brand-admins/"+diana.ID.Hex())
	req = testutil.WithChiURLParam(req, "userID", diana.ID.Hex())
	req = testutil.WithUser(req, admin)
	rec = httptest.NewRecorder()
	handler.HandleRemove(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	reloaded, err := userstore.New(db).GetByID(ctx, diana.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if reloaded.Role != models.RoleUser {
		t.Errorf("expected role demoted to user, got %q", reloaded.Role)
	}
}
