package userstore

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

// User-facing messages stay in Spanish; the public site displays them
// verbatim.
var (
	// ErrUserNotFound is returned when a lookup ahead of a mutation finds
	// no user.
	ErrUserNotFound = errors.New("Usuario no encontrado")
	// ErrDuplicateEmail is returned when the unique email index rejects a
	// write.
	ErrDuplicateEmail = errors.New("Ya existe un usuario con ese correo")

	errBadRole = errors.New(`role must be "user"|"verified_user"|"brand_admin"|"admin"`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByAuthID looks up a user by the identity provider's subject ID.
// Returns (nil, nil) when no user matches: unknown identities are an
// expected read result, not a failure.
func (s *Store) GetByAuthID(ctx context.Context, authID string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"auth_id": authID}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Upsert finds-or-creates a user keyed by the identity provider's subject.
// On conflict (existing identity) it refreshes the mutable profile fields
// (email, name, avatar) and leaves the role untouched. New users start as
// "user".
func (s *Store) Upsert(ctx context.Context, authID, email, name, avatarURL string) (*models.User, error) {
	email = normalize.Email(email)
	name = normalize.Name(name)
	now := time.Now().UTC()

	existing, err := s.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		u := models.User{
			ID:        primitive.NewObjectID(),
			AuthID:    authID,
			Email:     email,
			Name:      name,
			NameCI:    text.Fold(name),
			AvatarURL: avatarURL,
			Role:      models.RoleUser,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := s.c.InsertOne(ctx, u); err != nil {
			if wafflemongo.IsDup(err) {
				return nil, ErrDuplicateEmail
			}
			return nil, err
		}
		return &u, nil
	}

	set := bson.M{
		"email":      email,
		"name":       name,
		"name_ci":    text.Fold(name),
		"updated_at": now,
	}
	if avatarURL != "" {
		set["avatar_url"] = avatarURL
	}
	if _, err := s.c.UpdateByID(ctx, existing.ID, bson.M{"$set": set}); err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return s.GetByID(ctx, existing.ID)
}

// List returns all users sorted by folded name.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetRole overwrites a user's role. The enum is validated here; the
// admin-only restriction is enforced by route middleware.
func (s *Store) SetRole(ctx context.Context, id primitive.ObjectID, role string) error {
	role = normalize.Role(role)
	if !models.ValidRole(role) {
		return errBadRole
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"role":       role,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ProfileUpdate carries the self-service mutable fields. Nil pointers mean
// "leave as is"; they are stripped before the write, never set to null.
type ProfileUpdate struct {
	Name      *string
	AvatarURL *string
	Phone     *string
	City      *string
	BirthYear *int
}

// UpdateProfile applies only the defined fields of upd. An empty update is
// a no-op: the stored document is left byte-identical.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) error {
	set := bson.M{}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.AvatarURL != nil {
		set["avatar_url"] = *upd.AvatarURL
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.City != nil {
		set["city"] = *upd.City
	}
	if upd.BirthYear != nil {
		set["birth_year"] = *upd.BirthYear
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
		return ErrUserNotFound
	}
	return nil
}

// Delete removes a user by ID. Returns the number of documents deleted
// (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
