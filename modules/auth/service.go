package auth

import (
	"log/slog"

	"github.com/notebank/notebank/pkg/authgate"
	"github.com/notebank/notebank/pkg/session"
)

// Service is the HTTP surface of the session lifecycle subsystem. It is
// mountable: callers embed it into their router via Handle.
//
//	r := chi.NewRouter()
//	r.Mount("/auth", auth.NewService(manager, gate).Handle())
type Service struct {
	sessions *session.Manager
	gate     *authgate.Gate
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for request-scoped diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates the auth module around a session manager and an auth
// gate. The gate protects the sign-out endpoint; upsert and status are
// called by the platform backend and carry their own identifiers.
func NewService(sessions *session.Manager, gate *authgate.Gate, opts ...Option) *Service {
	if sessions == nil {
		panic("auth: session manager is required")
	}
	if gate == nil {
		panic("auth: auth gate is required")
	}

	s := &Service{
		sessions: sessions,
		gate:     gate,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
