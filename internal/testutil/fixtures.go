package testutil

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given name, email, and role.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		AuthID:    "test-auth-" + primitive.NewObjectID().Hex(),
		Email:     email,
		Name:      name,
		NameCI:    text.Fold(name),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateBrand creates a test brand. The slug is derived from the name.
func (f *Fixtures) CreateBrand(ctx context.Context, name string, active bool) models.Brand {
	f.t.Helper()

	now := time.Now().UTC()
	brand := models.Brand{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Slug:      text.Fold(name),
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("brands").InsertOne(ctx, brand); err != nil {
		f.t.Fatalf("failed to create test brand: %v", err)
	}
	return brand
}

// CreateEvent creates a visible test event on the given date (YYYY-MM-DD).
func (f *Fixtures) CreateEvent(ctx context.Context, title, date string, brandID *primitive.ObjectID) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	event := models.Event{
		ID:        primitive.NewObjectID(),
		BrandID:   brandID,
		Title:     title,
		TitleCI:   text.Fold(title),
		Slug:      text.Fold(title) + "-" + primitive.NewObjectID().Hex()[:6],
		Date:      date,
		Visible:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("events").InsertOne(ctx, event); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return event
}

// CreateBanner creates a test banner at the given order position.
func (f *Fixtures) CreateBanner(ctx context.Context, title string, order int, active bool) models.Banner {
	f.t.Helper()

	now := time.Now().UTC()
	banner := models.Banner{
		ID:        primitive.NewObjectID(),
		Title:     title,
		ImageURL:  fmt.Sprintf("https://cdn.example.com/%s.jpg", text.Fold(title)),
		Order:     order,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("banners").InsertOne(ctx, banner); err != nil {
		f.t.Fatalf("failed to create test banner: %v", err)
	}
	return banner
}

// CreateReview creates a test review post by the given author.
func (f *Fixtures) CreateReview(ctx context.Context, author models.User, title string, rating int) models.ReviewPost {
	f.t.Helper()

	now := time.Now().UTC()
	post := models.ReviewPost{
		ID:         primitive.NewObjectID(),
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Title:      title,
		TitleCI:    text.Fold(title),
		Body:       "cuerpo de prueba",
		Rating:     rating,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("review_posts").InsertOne(ctx, post); err != nil {
		f.t.Fatalf("failed to create test review: %v", err)
	}
	return post
}

// CreateCommunity creates a test community with the given member count.
func (f *Fixtures) CreateCommunity(ctx context.Context, name string, members int) models.Community {
	f.t.Helper()

	now := time.Now().UTC()
	community := models.Community{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Slug:        text.Fold(name),
		MemberCount: members,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("communities").InsertOne(ctx, community); err != nil {
		f.t.Fatalf("failed to create test community: %v", err)
	}
	return community
}
