// internal/domain/models/banner.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Banner is a promotional slot on the public site. Order controls display
// sequence; reordering rewrites the order of every affected banner.
type Banner struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	ImageURL string             `bson:"image_url" json:"image_url"`
	LinkURL  string             `bson:"link_url,omitempty" json:"link_url,omitempty"`
	Active   bool               `bson:"active" json:"active"`
	Order    int                `bson:"order" json:"order"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
