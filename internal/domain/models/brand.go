// internal/domain/models/brand.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Brand is a car manufacturer managed through the admin panel.
// Slug is unique and used in public URLs.
type Brand struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	NameCI  string             `bson:"name_ci" json:"-"`
	Slug    string             `bson:"slug" json:"slug"`
	LogoURL string             `bson:"logo_url,omitempty" json:"logo_url,omitempty"`
	Country string             `bson:"country,omitempty" json:"country,omitempty"`
	Active  bool               `bson:"active" json:"active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
