// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/autoatlas-mx/autoatlas/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID, and a
// found flag. If no user is present in context or the user ID is
// malformed, it returns "visitor", "", NilObjectID, false, so callers can
// trust that ok=true means a valid, authenticated user.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "admin"
}

// IsBrandAdmin reports whether the current request's user is a brand admin.
func IsBrandAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "brand_admin"
}

// IsVerified reports whether the user may attend verification-restricted
// events: verified users and every role above them qualify.
func IsVerified(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	switch role {
	case "verified_user", "brand_admin", "admin":
		return true
	}
	return false
}

// UserBrandID returns the brand a brand_admin user administers.
// Returns NilObjectID if the user is not signed in or holds no delegation.
func UserBrandID(r *http.Request) primitive.ObjectID {
	user, ok := auth.CurrentUser(r)
	if !ok || user.BrandID == "" {
		return primitive.NilObjectID
	}
	oid, err := primitive.ObjectIDFromHex(user.BrandID)
	if err != nil {
		return primitive.NilObjectID
	}
	return oid
}

// CanManageBrand reports whether the current user may administer the given
// brand: admins always, brand admins only for their delegated brand.
func CanManageBrand(r *http.Request, brandID primitive.ObjectID) bool {
	if IsAdmin(r) {
		return true
	}
	return IsBrandAdmin(r) && UserBrandID(r) == brandID
}
