package bannerstore

import (
	"context"
	"errors"
	"time"

	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrBannerNotFound is returned when a mutation targets a missing banner.
var ErrBannerNotFound = errors.New("Banner no encontrado")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("banners")}
}

// List returns banners sorted by their order field. With activeOnly, only
// active banners are returned; the filter and sort run in the query
// against the (active, order) index.
func (s *Store) List(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var banners []models.Banner
	if err := cur.All(ctx, &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

// GetByID loads a banner by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Banner, error) {
	var b models.Banner
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a banner at the end of the display sequence.
func (s *Store) Create(ctx context.Context, b models.Banner) (models.Banner, error) {
	next, err := s.nextOrder(ctx)
	if err != nil {
		return models.Banner{}, err
	}

	b.ID = primitive.NewObjectID()
	b.Order = next
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return models.Banner{}, err
	}
	return b, nil
}

// nextOrder returns one past the highest existing order (0 for an empty
// collection).
func (s *Store) nextOrder(ctx context.Context) (int, error) {
	var top models.Banner
	err := s.c.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "order", Value: -1}})).Decode(&top)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return top.Order + 1, nil
}

// BannerUpdate carries partial updates; nil pointers leave fields as is.
type BannerUpdate struct {
	Title    *string
	ImageURL *string
	LinkURL  *string
	Active   *bool
}

// Update applies only the defined fields. An empty update is a no-op.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd BannerUpdate) error {
	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.ImageURL != nil {
		set["image_url"] = *upd.ImageURL
	}
	if upd.LinkURL != nil {
		set["link_url"] = *upd.LinkURL
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
		return err
	}
	if res.MatchedCount == 0 {
		return ErrBannerNotFound
	}
	return nil
}

// Delete removes a banner by ID. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Reorder rewrites every listed banner's order field to its position in
// ids. The writes are sequential per record (no transaction), so the
// operation is idempotent for a given sequence but two concurrent
// reorders can interleave.
func (s *Store) Reorder(ctx context.Context, ids []primitive.ObjectID) error {
	now := time.Now().UTC()
	for i, id := range ids {
		res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
			"order":      i,
			"updated_at": now,
		}})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrBannerNotFound
		}
	}
	return nil
}
