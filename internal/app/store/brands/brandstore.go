package brandstore

import (
	"context"
	"errors"
	"time"

	"github.com/autoatlas-mx/autoatlas/internal/app/system/normalize"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrBrandNotFound is returned when a mutation targets a missing brand.
	ErrBrandNotFound = errors.New("Marca no encontrada")
	// ErrDuplicateSlug is returned when the unique slug index rejects a
	// write.
	ErrDuplicateSlug = errors.New("Ya existe una marca con ese slug")

	errNameRequired = errors.New("brand name is required")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("brands")}
}

// List returns brands sorted by folded name. With activeOnly, inactive
// brands are filtered out in the query.
func (s *Store) List(ctx context.Context, activeOnly bool) ([]models.Brand, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var brands []models.Brand
	if err := cur.All(ctx, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// GetByID loads a brand by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Brand, error) {
	var b models.Brand
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBySlug loads a brand by slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*models.Brand, error) {
	var b models.Brand
	if err := s.c.FindOne(ctx, bson.M{"slug": normalize.Slug(slug)}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new brand after normalizing fields. A missing slug is
// derived from the name.
func (s *Store) Create(ctx context.Context, b models.Brand) (models.Brand, error) {
	b.ID = primitive.NewObjectID()
	b.Name = normalize.Name(b.Name)
	if b.Name == "" {
		return models.Brand{}, errNameRequired
	}
	b.NameCI = text.Fold(b.Name)
	if b.Slug == "" {
		b.Slug = normalize.Slug(b.Name)
	} else {
		b.Slug = normalize.Slug(b.Slug)
	}

	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, b); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Brand{}, ErrDuplicateSlug
		}
		return models.Brand{}, err
	}
	return b, nil
}

// BrandUpdate carries partial updates; nil pointers leave fields as is.
type BrandUpdate struct {
	Name    *string
	Slug    *string
	LogoURL *string
	Country *string
	Active  *bool
}

// Update applies only the defined fields. An empty update is a no-op.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd BrandUpdate) error {
	set := bson.M{}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.Slug != nil {
		set["slug"] = normalize.Slug(*upd.Slug)
	}
	if upd.LogoURL != nil {
		set["logo_url"] = *upd.LogoURL
	}
	if upd.Country != nil {
		set["country"] = *upd.Country
	}
	if upd.Active != nil {
		set["active"] = *upd.Active
	}
	if len(set) == 0 {
		return nil
	}
	set["updated_at"] = time.Now().UTC()

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateSlug
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrBrandNotFound
	}
	return nil
}

// Delete removes a brand by ID. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
