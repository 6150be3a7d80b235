package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handle returns the module's router. Routes:
//
//	POST   /session         — upsert the caller's single session
//	GET    /session/status  — validity check by user_id or session_id
//	DELETE /session         — sign out (authenticated; ?all=true for every device)
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/session", s.handleUpsert)
	r.Get("/session/status", s.handleStatus)

	r.Group(func(pr chi.Router) {
		pr.Use(s.gate.RequireAuth)
		pr.Delete("/session", s.handleSignOut)
	})

	return r
}
