// internal/domain/models/brandadmin.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BrandAdmin grants one user administrative scope over exactly one brand.
// user_id carries a unique index, so a user can never hold two delegations.
type BrandAdmin struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"user_id"`
	BrandID primitive.ObjectID `bson:"brand_id" json:"brand_id"`

	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	CreatedByID primitive.ObjectID `bson:"created_by_id,omitempty" json:"created_by_id,omitempty"`
}
