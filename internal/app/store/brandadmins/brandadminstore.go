package brandadminstore

import (
	"context"
	"errors"
	"time"

	"github.com/autoatlas-mx/autoatlas/internal/app/system/normalize"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrUserNotFound is returned when no user matches the given email.
	ErrUserNotFound = errors.New("Usuario no encontrado")
	// ErrAlreadyDelegated is returned in reject mode when the user already
	// administers a brand.
	ErrAlreadyDelegated = errors.New("El usuario ya es administrador de una marca")
)

// OnConflict selects the policy when the user already holds a delegation.
type OnConflict int

const (
	// OnConflictReject fails the assignment and leaves the existing link
	// unchanged.
	OnConflictReject OnConflict = iota
	// OnConflictOverwrite repoints the existing delegation at the new
	// brand.
	OnConflictOverwrite
)

// Store manages brand-admin delegations. It also touches the users
// collection: every successful assignment forces the user's role to
// brand_admin, and removal demotes them back to user.
type Store struct {
	c     *mongo.Collection
	users *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("brand_admins"),
		users: db.Collection("users"),
	}
}

// GetByUserID returns the user's delegation, or (nil, nil) when they have
// none.
func (s *Store) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.BrandAdmin, error) {
	var ba models.BrandAdmin
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&ba)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ba, nil
}

// List returns every delegation.
func (s *Store) List(ctx context.Context) ([]models.BrandAdmin, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.BrandAdmin
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByBrand returns the delegations for one brand.
func (s *Store) ListByBrand(ctx context.Context, brandID primitive.ObjectID) ([]models.BrandAdmin, error) {
	cur, err := s.c.Find(ctx, bson.M{"brand_id": brandID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.BrandAdmin
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Assign delegates brandID to the user with the given email.
//
// Unknown email → ErrUserNotFound, nothing written. An existing delegation
// is handled per mode: reject → ErrAlreadyDelegated with the link
// unchanged; overwrite → the link's brand is updated. On success in either
// mode the user's role is set to brand_admin.
//
// The unique index on user_id backs the reject path, so two concurrent
// assignments cannot both insert: the loser surfaces the same
// ErrAlreadyDelegated.
func (s *Store) Assign(ctx context.Context, email string, brandID primitive.ObjectID, mode OnConflict, createdBy primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := s.users.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	existing, err := s.GetByUserID(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	switch {
	case existing == nil:
		ba := models.BrandAdmin{
			ID:          primitive.NewObjectID(),
			UserID:      u.ID,
			BrandID:     brandID,
			CreatedAt:   now,
			CreatedByID: createdBy,
		}
		if _, err := s.c.InsertOne(ctx, ba); err != nil {
			if wafflemongo.IsDup(err) {
				// Lost a race with a concurrent assignment.
				return nil, ErrAlreadyDelegated
			}
			return nil, err
		}

	case mode == OnConflictReject:
		return nil, ErrAlreadyDelegated

	default: // overwrite
		if _, err := s.c.UpdateByID(ctx, existing.ID, bson.M{"$set": bson.M{
			"brand_id": brandID,
		}}); err != nil {
			return nil, err
		}
	}

	if _, err := s.users.UpdateByID(ctx, u.ID, bson.M{"$set": bson.M{
		"role":       models.RoleBrandAdmin,
		"updated_at": now,
	}}); err != nil {
		return nil, err
	}
	u.Role = models.RoleBrandAdmin
	return &u, nil
}

// Remove deletes a user's delegation and demotes them to the base role.
// Removing a user without a delegation is a no-op on the delegation side
// but still normalizes the role.
func (s *Store) Remove(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
		return err
	}
	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userID, "role": models.RoleBrandAdmin},
		bson.M{"$set": bson.M{"role": models.RoleUser, "updated_at": time.Now().UTC()}})
	return err
}

// DeleteByUser removes the delegation only, without touching the role.
// Used when the user record itself is being deleted.
func (s *Store) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
