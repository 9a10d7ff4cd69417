// Package gates provides authorization gate functions for handlers that
// need role checks beyond their route-level middleware (for example a
// route shared by admins and brand admins where only admins may delete).
//
// Routes with uniform role requirements should use the SessionManager
// middleware instead; gates exist for per-handler differences, and the
// policy question "may this user touch this specific brand's record" is
// answered by authz.CanManageBrand.
package gates

import (
	"net/http"

	"github.com/autoatlas-mx/autoatlas/internal/app/system/authz"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/httpjson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Result contains the outcome of a gate check.
type Result struct {
	Role   string
	Name   string
	UserID primitive.ObjectID
	OK     bool
}

// RequireAuth ensures a user is authenticated; otherwise writes 401 and
// returns OK=false.
func RequireAuth(w http.ResponseWriter, r *http.Request) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// RequireAdmin ensures the user is authenticated and an admin.
func RequireAdmin(w http.ResponseWriter, r *http.Request) Result {
	res := RequireAuth(w, r)
	if !res.OK {
		return res
	}
	if res.Role != "admin" {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return Result{OK: false}
	}
	return res
}

// RequireBrandScope ensures the user may administer the given brand:
// admins always, brand admins only their delegated brand.
func RequireBrandScope(w http.ResponseWriter, r *http.Request, brandID primitive.ObjectID) Result {
	res := RequireAuth(w, r)
	if !res.OK {
		return res
	}
	if !authz.CanManageBrand(r, brandID) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return Result{OK: false}
	}
	return res
}
