package communitystore_test

import (
	"testing"

	communitystore "github.com/autoatlas-mx/autoatlas/internal/app/store/communities"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/autoatlas-mx/autoatlas/internal/testutil"
)

func TestStore_List_SortedByMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := communitystore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateCommunity(ctx, "Club Mazda", 120)
	fixtures.CreateCommunity(ctx, "Amantes del Off-Road", 480)
	fixtures.CreateCommunity(ctx, "EVs México", 480)

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 communities, got %d", len(got))
	}
	if got[0].Name != "Amantes del Off-Road" || got[1].Name != "EVs México" {
		t.Errorf("expected member count desc then name, got %q, %q", got[0].Name, got[1].Name)
	}
	if got[2].Name != "Club Mazda" {
		t.Errorf("expected smallest community last, got %q", got[2].Name)
	}
}

func TestStore_Create_SlugFromName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := communitystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cm, err := store.Create(ctx, models.Community{Name: "Club Kia CDMX"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if cm.Slug == "" {
		t.Error("expected a derived slug")
	}

	got, err := store.GetBySlug(ctx, cm.Slug)
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if got.ID != cm.ID {
		t.Error("slug lookup returned a different community")
	}
}

func TestStore_Delete_CascadesPosts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := communitystore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cm := fixtures.CreateCommunity(ctx, "Club Mazda", 10)
	author := fixtures.CreateUser(ctx, "Diana", "diana@example.com", models.RoleUser)

	post, err := store.CreatePost(ctx, models.CommunityPost{
		CommunityID: cm.ID,
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		Title:       "Primer encuentro",
		Body:        "Nos vemos el sábado.",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	n, err := store.Delete(ctx, cm.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 community deleted, got %d", n)
	}

	if _, err := store.GetPost(ctx, post.ID); err != communitystore.ErrPostNotFound {
		t.Errorf("expected posts removed with the community, got %v", err)
	}
}

func TestStore_CreatePost_MissingCommunity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := communitystore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Diana", "diana@example.com", models.RoleUser)
	cm := fixtures.CreateCommunity(ctx, "Club Mazda", 10)
	if _, err := store.Delete(ctx, cm.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err := store.CreatePost(ctx, models.CommunityPost{
		CommunityID: cm.ID,
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		Title:       "Hola",
		Body:        "¿Sigue activo el club?",
	})
	if err != communitystore.ErrCommunityNotFound {
		t.Errorf("expected ErrCommunityNotFound, got %v", err)
	}
}
