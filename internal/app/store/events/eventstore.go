package eventstore

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

// DefaultUpcomingLimit caps the public upcoming-events list when the
// caller does not ask for a specific count.
const DefaultUpcomingLimit = 5

var (
	// ErrEventNotFound is returned when a mutation targets a missing event.
	ErrEventNotFound = errors.New("Evento no encontrado")
	// ErrDuplicateSlug is returned when the unique slug index rejects a
	// write.
	ErrDuplicateSlug = errors.New("Ya existe un evento con ese slug")

	errTitleRequired = errors.New("event title is required")
	errDateRequired  = errors.New("event date is required")
)

// Store manages events. It also holds the rsvps collection because event
// deletion cascades to RSVP records. The cascade is manual, not a
// database one; a failure between the two deletes leaves the event in
// place with its RSVPs already gone.
type Store struct {
	c     *mongo.Collection
	rsvps *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("events"),
		rsvps: db.Collection("rsvps"),
	}
}

// ListFilter narrows List results.
type ListFilter struct {
	VisibleOnly bool
	BrandID     *primitive.ObjectID
}

// List returns events matching the filter, newest date first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Event, error) {
	filter := bson.M{}
	if f.VisibleOnly {
		filter["visible"] = true
	}
	if f.BrandID != nil {
		filter["brand_id"] = *f.BrandID
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Upcoming returns visible events dated today or later, ascending by
// date, truncated to limit (DefaultUpcomingLimit when limit <= 0). The
// date comparison is a lexical string compare against YYYY-MM-DD "today",
// pushed into the query so the (visible, date) index serves it.
func (s *Store) Upcoming(ctx context.Context, today string, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	cur, err := s.c.Find(ctx,
		bson.M{"visible": true, "date": bson.M{"$gte": today}},
		options.Find().
			SetSort(bson.D{{Key: "date", Value: 1}}).
			SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetByID loads an event by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// GetBySlug loads an event by slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"slug": normalize.Slug(slug)}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new event. A missing slug is derived from the title.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	e.ID = primitive.NewObjectID()
	e.Title = normalize.Name(e.Title)
	if e.Title == "" {
		return models.Event{}, errTitleRequired
	}
	if e.Date == "" {
		return models.Event{}, errDateRequired
	}
	e.TitleCI = text.Fold(e.Title)
	if e.Slug == "" {
		e.Slug = normalize.Slug(e.Title)
	} else {
		e.Slug = normalize.Slug(e.Slug)
	}

	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Event{}, ErrDuplicateSlug
		}
		return models.Event{}, err
	}
	return e, nil
}

// EventUpdate carries partial updates; nil pointers leave fields as is.
// Capacity uses a double pointer so "clear the cap" (explicit null) and
// "leave alone" (absent) stay distinguishable.
type EventUpdate struct {
	Title                *string
	Slug                 *string
	Description          *string
	Date                 *string
	Time                 *string
	Location             *string
	Visible              *bool
	RequiresVerification *bool
	Capacity             **int
	BrandID              *primitive.ObjectID
}

// Update applies only the defined fields. An empty update is a no-op.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd EventUpdate) error {
	set := bson.M{}
	unset := bson.M{}
	if upd.Title != nil {
		title := normalize.Name(*upd.Title)
		set["title"] = title
		set["title_ci"] = text.Fold(title)
	}
	if upd.Slug != nil {
		set["slug"] = normalize.Slug(*upd.Slug)
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Date != nil {
		set["date"] = *upd.Date
	}
	if upd.Time != nil {
		set["time"] = *upd.Time
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.Visible != nil {
		set["visible"] = *upd.Visible
	}
	if upd.RequiresVerification != nil {
		set["requires_verification"] = *upd.RequiresVerification
	}
	if upd.Capacity != nil {
		if *upd.Capacity == nil {
			unset["capacity"] = ""
		} else {
			set["capacity"] = **upd.Capacity
		}
	}
	if upd.BrandID != nil {
		set["brand_id"] = *upd.BrandID
	}
	if len(set) == 0 && len(unset) == 0 {
		return nil
	}
	set["updated_at"] = time.Now().UTC()

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := s.c.UpdateByID(ctx, id, update)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateSlug
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Delete removes an event and, first, every RSVP referencing it. The two
// steps are not transactional.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.rsvps.DeleteMany(ctx, bson.M{"event_id": id}); err != nil {
		return err
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}
