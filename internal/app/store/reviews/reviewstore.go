package reviewstore

import (
	"context"
	"errors"
	"time"

	"github.com/autoatlas-mx/autoatlas/internal/app/system/htmlsanitize"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrReviewNotFound is returned when a review lookup or mutation misses.
	ErrReviewNotFound = errors.New("Reseña no encontrada")

	// ErrBadRating is returned when a rating is outside 1..5.
	ErrBadRating = errors.New("La calificación debe estar entre 1 y 5")
)

type Store struct {
	c        *mongo.Collection
	comments *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:        db.Collection("review_posts"),
		comments: db.Collection("comments"),
	}
}

// List returns reviews newest first. With carID set, only reviews for
// that catalog car are returned.
func (s *Store) List(ctx context.Context, carID string) ([]models.ReviewPost, error) {
	filter := bson.M{}
	if carID != "" {
		filter["car_id"] = carID
	}
	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.ReviewPost
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetByID loads a review by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReviewPost, error) {
	var p models.ReviewPost
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a review. The body is sanitized before storage so every
// read path can treat it as safe markup.
func (s *Store) Create(ctx context.Context, p models.ReviewPost) (models.ReviewPost, error) {
	if p.Rating < 1 || p.Rating > 5 {
		return models.ReviewPost{}, ErrBadRating
	}
	p.ID = primitive.NewObjectID()
	p.TitleCI = text.Fold(p.Title)
	p.Body = htmlsanitize.Sanitize(p.Body)
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.ReviewPost{}, err
	}
	return p, nil
}

// ReviewUpdate carries partial updates; nil pointers leave fields as is.
type ReviewUpdate struct {
	Title  *string
	Body   *string
	Rating *int
}

// Update applies only the defined fields. An empty update is a no-op.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd ReviewUpdate) error {
	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
		set["title_ci"] = text.Fold(*upd.Title)
	}
	if upd.Body != nil {
		set["body"] = htmlsanitize.Sanitize(*upd.Body)
	}
	if upd.Rating != nil {
		if *upd.Rating < 1 || *upd.Rating > 5 {
			return ErrBadRating
		}
		set["rating"] = *upd.Rating
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
		return ErrReviewNotFound
	}
	return nil
}

// Delete removes a review and its comment thread. The two deletes are
// not transactional; comments go first so a failure cannot strand a
// thread under a missing post for long.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if _, err := s.comments.DeleteMany(ctx, bson.M{"post_id": id}); err != nil {
		return 0, err
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
