package commentstore

import (
	"context"
	"errors"
	"time"

	"github.com/autoatlas-mx/autoatlas/internal/app/system/htmlsanitize"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrCommentNotFound is returned when a comment lookup or mutation misses.
	ErrCommentNotFound = errors.New("Comentario no encontrado")

	// ErrParentNotFound is returned when a reply names a parent comment
	// that does not exist under the same post.
	ErrParentNotFound = errors.New("El comentario al que respondes no existe")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("comments")}
}

// ListByPost returns a post's comments oldest first, so threads render in
// arrival order.
func (s *Store) ListByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	cur, err := s.c.Find(ctx, bson.M{"post_id": postID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []models.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// Create inserts a comment. A non-nil ParentID must reference an existing
// comment on the same post.
func (s *Store) Create(ctx context.Context, cm models.Comment) (models.Comment, error) {
	if cm.ParentID != nil {
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": *cm.ParentID, "post_id": cm.PostID})
		if err != nil {
			return models.Comment{}, err
		}
		if n == 0 {
			return models.Comment{}, ErrParentNotFound
		}
	}
	cm.ID = primitive.NewObjectID()
	cm.Body = htmlsanitize.Sanitize(cm.Body)
	cm.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, cm); err != nil {
		return models.Comment{}, err
	}
	return cm, nil
}

// GetByID loads a comment by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var cm models.Comment
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cm)
	if err == mongo.ErrNoDocuments {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

// Delete removes a comment by ID. Replies to it are kept; they render as
// orphaned top-level comments. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
