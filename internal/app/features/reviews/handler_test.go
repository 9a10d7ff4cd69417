package reviews_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/autoatlas-mx/autoatlas/internal/app/features/reviews"
	commentstore "github.com/autoatlas-mx/autoatlas/internal/app/store/comments"
	reviewstore "github.com/autoatlas-mx/autoatlas/internal/app/store/reviews"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/autoatlas-mx/autoatlas/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*reviews.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := reviews.NewHandler(reviewstore.New(db), commentstore.New(db), zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func asTestUser(u models.User) testutil.TestUser {
	return testutil.TestUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

func TestHandleCreate_RequiresVerified(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	plain := fixtures.CreateUser(ctx, "Simple", "simple@example.com", models.RoleUser)

	body := `{"title":"Mi reseña","body":"Buen coche.","rating":4}`
	req := testutil.NewJSONRequest("POST", "/reviews", body)
	req = testutil.WithUser(req, asTestUser(plain))

	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}

	verified := fixtures.CreateUser(ctx, "Verificada", "ver@example.com", models.RoleVerifiedUser)
	req = testutil.NewJSONRequest("POST", "/reviews", body)
	req = testutil.WithUser(req, asTestUser(verified))

	rec = httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var created models.ReviewPost
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if created.AuthorID != verified.ID {
		t.Error("expected the review attributed to its author")
	}
}

func TestHandleUpdate_AuthorOnly(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Autora", "autora@example.com", models.RoleVerifiedUser)
	other := fixtures.CreateUser(ctx, "Otra", "otra@example.com", models.RoleVerifiedUser)
	post := fixtures.CreateReview(ctx, author, "Original", 3)

	body := `{"title":"Editada"}`
	req := testutil.NewJSONRequest("PATCH", "/reviews/"+post.ID.Hex(), body)
	req = testutil.WithChiURLParam(req, "id", post.ID.Hex())
	req = testutil.WithUser(req, asTestUser(other))

	rec := httptest.NewRecorder()
	handler.HandleUpdate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}

	// The author can edit their own post.
	req = testutil.NewJSONRequest("PATCH", "/reviews/"+post.ID.Hex(), body)
	req = testutil.WithChiURLParam(req, "id", post.ID.Hex())
	req = testutil.WithUser(req, asTestUser(author))

	rec = httptest.NewRecorder()
	handler.HandleUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	got, err := handler.Reviews.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "Editada" {
		t.Errorf("expected updated title, got %q", got.Title)
	}
}

func TestHandleDelete_AdminOverride(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Autora", "autora@example.com", models.RoleVerifiedUser)
	post := fixtures.CreateReview(ctx, author, "A moderar", 1)

	req := testutil.NewRequest("DELETE", "/reviews/"+post.ID.Hex())
	req = testutil.WithChiURLParam(req, "id", post.ID.Hex())
	req = testutil.WithUser(req, testutil.AdminUser())

	rec := httptest.NewRecorder()
	handler.HandleDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	if _, err := handler.Reviews.GetByID(ctx, post.ID); err != reviewstore.ErrReviewNotFound {
		t.Errorf("expected review gone, got %v", err)
	}
}

func TestHandleCreateComment_AnySignedIn(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Autora", "autora@example.com", models.RoleVerifiedUser)
	plain := fixtures.CreateUser(ctx, "Simple", "simple@example.com", models.RoleUser)
	post := fixtures.CreateReview(ctx, author, "Mi reseña", 4)

	body := `{"body":"Buen punto."}`
	req := testutil.NewJSONRequest("POST", "/reviews/"+post.ID.Hex()+"/comments", body)
	req = testutil.WithChiURLParam(req, "id", post.ID.Hex())
	req = testutil.WithUser(req, asTestUser(plain))

	rec := httptest.NewRecorder()
	handler.HandleCreateComment(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	comments, err := handler.Comments.ListByPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListByPost failed: %v", err)
	}
	if len(comments) != 1 || comments[0].AuthorID != plain.ID {
		t.Errorf("expected one comment by the plain user, got %d", len(comments))
	}
}
