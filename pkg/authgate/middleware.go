package authgate

import (
	"net/http"

	"github.com/notebank/notebank/pkg/session"
)

// Middleware resolves the request's credential and, on success, injects the
// record into the context. Unauthenticated requests pass through untouched.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec, err := g.Resolve(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithRecord(r.Context(), rec)))
	})
}

// RequireAuth rejects requests whose credential does not resolve to a valid
// session record.
func (g *Gate) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec, err := g.Resolve(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithRecord(r.Context(), rec)))
	})
}

// RequireRoles rejects authenticated requests whose principal holds none of
// the allowed roles.
func (g *Gate) RequireRoles(roles ...session.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec, err := g.Resolve(r)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if err := RequireRole(rec, roles...); err != nil {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithRecord(r.Context(), rec)))
		})
	}
}
