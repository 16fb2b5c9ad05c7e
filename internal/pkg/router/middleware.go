package router

import (
	"net/http"
	"slices"

	"github.com/servizo/servizo/internal/pkg/jwt"
)

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(next http.Handler) http.Handler

// Chain applies middlewares to h so the first middleware is the outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}

	return h
}

// RequireRoles rejects requests whose JWT claims do not carry one of the roles.
func RequireRoles(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clm := jwt.GetAuth(r.Context())
			if clm == nil {
				writeJSON(w, map[string]string{"message": "Authentication required"}, http.StatusUnauthorized)
				return
			}

			if !slices.Contains(roles, clm.UserRole) {
				writeJSON(w, map[string]string{"message": "Insufficient role"}, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
