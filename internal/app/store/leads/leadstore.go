package leadstore

import (
	"context"
	"errors"
	"time"

	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/normalize"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrLeadNotFound is returned when a lead lookup or mutation misses.
	ErrLeadNotFound = errors.New("Solicitud no encontrada")

	// ErrBadStatus is returned when a status transition names an
	// unknown pipeline stage.
	ErrBadStatus = errors.New("Estado de solicitud no válido")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("leads")}
}

// Create records a purchase-interest lead. The caller supplies the
// contact fields; the store assigns the reference and starting status.
func (s *Store) Create(ctx context.Context, l models.Lead) (models.Lead, error) {
	l.ID = primitive.NewObjectID()
	l.Reference = uuid.NewString()
	l.Status = models.LeadStatusNew
	l.Email = normalize.Email(l.Email)
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, l); err != nil {
		return models.Lead{}, err
	}
	return l, nil
}

// List returns leads newest first, optionally filtered to one pipeline
// status. An empty status means all.
func (s *Store) List(ctx context.Context, status string) ([]models.Lead, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = normalize.Status(status)
	}
	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var leads []models.Lead
	if err := cur.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// GetByID loads a lead by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Lead, error) {
	var l models.Lead
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err == mongo.ErrNoDocuments {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateStatus moves a lead to another pipeline stage. The stage must be
// one of the known status values.
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	status = normalize.Status(status)
	if !models.ValidLeadStatus(status) {
		return ErrBadStatus
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// LeadUpdate carries partial updates to a lead's contact fields; nil
// pointers leave fields as is. Status moves through UpdateStatus only.
type LeadUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	Message *string
	CarID   *string
}

// Update applies only the defined fields. An empty update is a no-op.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd LeadUpdate) error {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = normalize.Name(*upd.Name)
	}
	if upd.Email != nil {
		set["email"] = normalize.Email(*upd.Email)
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Message != nil {
		set["message"] = *upd.Message
	}
	if upd.CarID != nil {
		set["car_id"] = *upd.CarID
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
		return ErrLeadNotFound
	}
	return nil
}

// Delete removes a lead by ID. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
