// internal/domain/models/review.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewPost is a user-authored car review. Body is stored already
// sanitized.
type ReviewPost struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID   primitive.ObjectID `bson:"author_id" json:"author_id"`
	AuthorName string             `bson:"author_name" json:"author_name"`
	Title      string             `bson:"title" json:"title"`
	TitleCI    string             `bson:"title_ci" json:"-"`
	Body       string             `bson:"body" json:"body"`
	CarID      string             `bson:"car_id,omitempty" json:"car_id,omitempty"`
	Rating     int                `bson:"rating" json:"rating"` // 1..5

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Comment threads under a review post. ParentID is nil for top-level
// comments.
type Comment struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PostID     primitive.ObjectID  `bson:"post_id" json:"post_id"`
	AuthorID   primitive.ObjectID  `bson:"author_id" json:"author_id"`
	AuthorName string              `bson:"author_name" json:"author_name"`
	ParentID   *primitive.ObjectID `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	Body       string              `bson:"body" json:"body"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
