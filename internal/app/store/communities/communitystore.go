package communitystore

import (
	"context"
	"errors"
	"time"

	"github.com/autoatlas-mx/autoatlas/internal/app/system/htmlsanitize"
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
	// ErrCommunityNotFound is returned when a community lookup or
	// mutation misses.
	ErrCommunityNotFound = errors.New("Comunidad no encontrada")

	// ErrDuplicateSlug is returned when a create or rename collides with
	// an existing community slug.
	ErrDuplicateSlug = errors.New("Ya existe una comunidad con ese slug")

	// ErrPostNotFound is returned when a post lookup misses.
	ErrPostNotFound = errors.New("Publicación no encontrada")
)

type Store struct {
	c     *mongo.Collection
	posts *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("communities"),
		posts: db.Collection("community_posts"),
	}
}

// List returns communities largest first, ties broken by name.
func (s *Store) List(ctx context.Context) ([]models.Community, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{
		{Key: "member_count", Value: -1},
		{Key: "name_ci", Value: 1},
	}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var communities []models.Community
	if err := cur.All(ctx, &communities); err != nil {
		return nil, err
	}
	return communities, nil
}

// GetByID loads a community by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Community, error) {
	var cm models.Community
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cm)
	if err == mongo.ErrNoDocuments {
		return nil, ErrCommunityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

// GetBySlug loads a community by its URL slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*models.Community, error) {
	var cm models.Community
	err := s.c.FindOne(ctx, bson.M{"slug": normalize.Slug(slug)}).Decode(&cm)
	if err == mongo.ErrNoDocuments {
		return nil, ErrCommunityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

// Create inserts a community. A missing slug is derived from the name.
// The unique slug index turns racing duplicate creates into
// ErrDuplicateSlug.
func (s *Store) Create(ctx context.Context, cm models.Community) (models.Community, error) {
	cm.ID = primitive.NewObjectID()
	cm.Name = normalize.Name(cm.Name)
	cm.NameCI = text.Fold(cm.Name)
	if cm.Slug == "" {
		cm.Slug = normalize.Slug(cm.Name)
	} else {
		cm.Slug = normalize.Slug(cm.Slug)
	}
	cm.Description = htmlsanitize.Sanitize(cm.Description)
	now := time.Now().UTC()
	cm.CreatedAt = now
	cm.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, cm); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Community{}, ErrDuplicateSlug
		}
		return models.Community{}, err
	}
	return cm, nil
}

// CommunityUpdate carries partial updates; nil pointers leave fields as is.
type CommunityUpdate struct {
	Name        *string
	Slug        *string
	Description *string
	MemberCount *int
}

// Update applies only the defined fields. An empty update is a no-op.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd CommunityUpdate) error {
	set := bson.M{}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.Slug != nil {
		set["slug"] = normalize.Slug(*upd.Slug)
	}
	if upd.Description != nil {
		set["description"] = htmlsanitize.Sanitize(*upd.Description)
	}
	if upd.MemberCount != nil {
		set["member_count"] = *upd.MemberCount
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
		return ErrCommunityNotFound
	}
	return nil
}

// Delete removes a community and its posts. The deletes are not
// transactional; posts go first.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if _, err := s.posts.DeleteMany(ctx, bson.M{"community_id": id}); err != nil {
		return 0, err
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListPosts returns a community's posts newest first.
func (s *Store) ListPosts(ctx context.Context, communityID primitive.ObjectID) ([]models.CommunityPost, error) {
	cur, err := s.posts.Find(ctx, bson.M{"community_id": communityID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.CommunityPost
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost inserts a member post under an existing community.
func (s *Store) CreatePost(ctx context.Context, p models.CommunityPost) (models.CommunityPost, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": p.CommunityID})
	if err != nil {
		return models.CommunityPost{}, err
	}
	if n == 0 {
		return models.CommunityPost{}, ErrCommunityNotFound
	}

	p.ID = primitive.NewObjectID()
	p.Body = htmlsanitize.Sanitize(p.Body)
	p.CreatedAt = time.Now().UTC()

	if _, err := s.posts.InsertOne(ctx, p); err != nil {
		return models.CommunityPost{}, err
	}
	return p, nil
}

// GetPost loads one post by ID.
func (s *Store) GetPost(ctx context.Context, id primitive.ObjectID) (*models.CommunityPost, error) {
	var p models.CommunityPost
	err := s.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePost removes a post by ID. Returns the number of documents deleted.
func (s *Store) DeletePost(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
