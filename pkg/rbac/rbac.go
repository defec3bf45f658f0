// Package rbac provides role-based access control for the dashboard API.
//
// The dashboard admits exactly two roles, Admin and Manager. That rule
// lives in one place, CanAccessAdmin, so the HTTP middleware, the
// gateway client, and the CLI all agree on who gets in.
package rbac

import (
	"net/http"

	"github.com/ecotrackhq/ecotrack/pkg/middleware"
	"github.com/ecotrackhq/ecotrack/pkg/response"
)

// Account roles as stored on the user record and carried in JWT claims.
const (
	RoleCustomer = "Customer"
	RoleAdmin    = "Admin"
	RoleManager  = "Manager"
)

// CanAccessAdmin reports whether a role may enter the dashboard.
// Unknown or empty roles are denied.
func CanAccessAdmin(role string) bool {
	return role == RoleAdmin || role == RoleManager
}

// AdminOnly returns middleware that allows only dashboard-capable roles.
// Requires middleware.Auth to have already run.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !CanAccessAdmin(middleware.RoleFromCtx(r.Context())) {
			response.Forbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HasRole returns middleware that allows access only to the given roles.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allowed[middleware.RoleFromCtx(r.Context())] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Guest returns middleware that blocks authenticated users (login/register).
func Guest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if middleware.UserIDFromCtx(r.Context()) != 0 {
			response.Error(w, http.StatusConflict, "Already authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}
