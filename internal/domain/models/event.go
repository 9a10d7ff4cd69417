// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a marketplace event (launch, meetup, test-drive day), optionally
// owned by a brand. Date is a YYYY-MM-DD string so "upcoming" queries can
// compare lexically against today, which is how the public site filters.
type Event struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	BrandID     *primitive.ObjectID `bson:"brand_id,omitempty" json:"brand_id,omitempty"`
	Title       string              `bson:"title" json:"title"`
	TitleCI     string              `bson:"title_ci" json:"-"`
	Slug        string              `bson:"slug" json:"slug"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Date        string              `bson:"date" json:"date"` // YYYY-MM-DD
	Time        string              `bson:"time,omitempty" json:"time,omitempty"`
	Location    string              `bson:"location,omitempty" json:"location,omitempty"`
	Visible     bool                `bson:"visible" json:"visible"`

	// RequiresVerification restricts RSVPs to verified users and above.
	RequiresVerification bool `bson:"requires_verification" json:"requires_verification"`

	// Capacity caps the number of RSVPs; nil means unlimited.
	Capacity *int `bson:"capacity,omitempty" json:"capacity,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// RSVP records a user's attendance for an event. The (event_id, user_id)
// pair is unique.
type RSVP struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID primitive.ObjectID `bson:"event_id" json:"event_id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"user_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
