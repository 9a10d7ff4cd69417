// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold. Visitors are simply requests without a session;
// they never have a user record.
const (
	RoleUser         = "user"
	RoleVerifiedUser = "verified_user"
	RoleBrandAdmin   = "brand_admin"
	RoleAdmin        = "admin"
)

// ValidRole reports whether role is one of the assignable roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleVerifiedUser, RoleBrandAdmin, RoleAdmin:
		return true
	}
	return false
}

// User is a marketplace account, created on first sign-in through the
// identity provider. AuthID is the provider's stable subject identifier;
// it and Email are unique.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthID    string             `bson:"auth_id" json:"auth_id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name" json:"name"`
	NameCI    string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	AvatarURL string             `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	City      string             `bson:"city,omitempty" json:"city,omitempty"`
	BirthYear int                `bson:"birth_year,omitempty" json:"birth_year,omitempty"`
	Role      string             `bson:"role" json:"role"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
