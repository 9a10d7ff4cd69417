package reviewstore_test

import (
	"testing"

	commentstore "github.com/autoatlas-mx/autoatlas/internal/app/store/comments"
	reviewstore "github.com/autoatlas-mx/autoatlas/internal/app/store/reviews"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/autoatlas-mx/autoatlas/internal/testutil"
)

func TestStore_Create_RatingBounds(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reviewstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Diana", "diana@example.com", models.RoleVerifiedUser)

	for _, rating := range []int{0, 6, -1} {
		_, err := store.Create(ctx, models.ReviewPost{
			AuthorID:   author.ID,
			AuthorName: author.Name,
			Title:      "Mi experiencia",
			Body:       "Buen coche.",
			Rating:     rating,
		})
		if err != reviewstore.ErrBadRating {
			t.Errorf("rating %d: expected ErrBadRating, got %v", rating, err)
		}
	}

	p, err := store.Create(ctx, models.ReviewPost{
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Title:      "Mi experiencia",
		Body:       "Buen coche.",
		Rating:     5,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.Rating != 5 {
		t.Errorf("expected rating 5, got %d", p.Rating)
	}
}

func TestStore_Create_SanitizesBody(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reviewstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Diana", "diana@example.com", models.RoleVerifiedUser)

	p, err := store.Create(ctx, models.ReviewPost{
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Title:      "Ojo",
		Body:       `<p>Bien</p><script>alert("x")</script>`,
		Rating:     3,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Body != "<p>Bien</p>" {
		t.Errorf("expected script stripped, got %q", got.Body)
	}
}

func TestStore_List_ByCar(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reviewstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Diana", "diana@example.com", models.RoleVerifiedUser)

	if _, err := store.Create(ctx, models.ReviewPost{
		AuthorID: author.ID, AuthorName: author.Name,
		Title: "Sportage", Body: "Bien.", CarID: "42", Rating: 4,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.ReviewPost{
		AuthorID: author.ID, AuthorName: author.Name,
		Title: "CX-5", Body: "Mejor.", CarID: "7", Rating: 5,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.List(ctx, "42")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Sportage" {
		t.Errorf("expected only the car's review, got %d", len(got))
	}

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 reviews, got %d", len(all))
	}
}

func TestStore_Delete_CascadesComments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reviewstore.New(db)
	comments := commentstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Diana", "diana@example.com", models.RoleVerifiedUser)
	post := fixtures.CreateReview(ctx, author, "Mi reseña", 4)

	cm, err := comments.Create(ctx, models.Comment{
		PostID:     post.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Body:       "De acuerdo.",
	})
	if err != nil {
		t.Fatalf("comment Create failed: %v", err)
	}

	if _, err := store.Delete(ctx, post.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := comments.GetByID(ctx, cm.ID); err != commentstore.ErrCommentNotFound {
		t.Errorf("expected comments removed with the post, got %v", err)
	}
}
