package rsvpstore

import (
	"context"
	"errors"
	"time"

	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrAlreadyRegistered is returned when the (event, user) pair already has
// an RSVP; the unique index backs this even under concurrent requests.
var ErrAlreadyRegistered = errors.New("Ya estás registrado en este evento")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("rsvps")}
}

// Create registers a user for an event.
func (s *Store) Create(ctx context.Context, eventID, userID primitive.ObjectID) (models.RSVP, error) {
	r := models.RSVP{
		ID:        primitive.NewObjectID(),
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			return models.RSVP{}, ErrAlreadyRegistered
		}
		return models.RSVP{}, err
	}
	return r, nil
}

// Delete removes a user's RSVP for an event. Returns the number deleted.
func (s *Store) Delete(ctx context.Context, eventID, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"event_id": eventID, "user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByEvent returns all RSVPs for one event.
func (s *Store) ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]models.RSVP, error) {
	cur, err := s.c.Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.RSVP
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByEvent returns the number of RSVPs for one event, used to enforce
// capacity caps.
func (s *Store) CountByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"event_id": eventID})
}

// Exists reports whether the user already has an RSVP for the event.
func (s *Store) Exists(ctx context.Context, eventID, userID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"event_id": eventID, "user_id": userID}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}
