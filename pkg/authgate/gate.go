package authgate

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/notebank/notebank/pkg/bearer"
	"github.com/notebank/notebank/pkg/session"
)

// DefaultCookieName is the cookie carrying the session identifier.
const DefaultCookieName = "sid"

const bearerPrefix = "Bearer "

// SessionResolver resolves an opaque credential to a valid session record.
// Satisfied by *session.Manager.
type SessionResolver interface {
	Resolve(ctx context.Context, value string, kind session.KeyKind) (*session.Record, error)
}

// TokenVerifier verifies a signed bearer token. Satisfied by *bearer.Service.
type TokenVerifier interface {
	Verify(tokenString string) (*bearer.Claims, error)
}

// Gate answers "is this bearer credential currently valid, and for whom"
// for request handlers. A client presents either a cookie-carried session
// identifier or a signed bearer token; either may legitimately be absent
// depending on client type, so the gate tries the cookie first and falls
// back to the bearer token.
type Gate struct {
	sessions   SessionResolver
	tokens     TokenVerifier
	cookieName string
}

// Option is a functional option for configuring the Gate
type Option func(*Gate)

// WithCookieName overrides the session cookie name
func WithCookieName(name string) Option {
	return func(g *Gate) {
		if name != "" {
			g.cookieName = name
		}
	}
}

// New creates an auth gate over the given session resolver and token
// verifier.
func New(sessions SessionResolver, tokens TokenVerifier, opts ...Option) *Gate {
	g := &Gate{
		sessions:   sessions,
		tokens:     tokens,
		cookieName: DefaultCookieName,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Resolve returns the valid session record behind the request's credential,
// or a distinguishable failure. Store outages propagate as such — they are
// never collapsed into "no session".
func (g *Gate) Resolve(r *http.Request) (*session.Record, error) {
	ctx := r.Context()

	hadCredential := false
	if c, err := r.Cookie(g.cookieName); err == nil && c.Value != "" {
		hadCredential = true
		rec, err := g.sessions.Resolve(ctx, c.Value, session.KeySessionID)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, session.ErrNotFound) {
			return nil, err
		}
	}

	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, bearerPrefix) {
		claims, err := g.tokens.Verify(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			return nil, errors.Join(ErrInvalidCredential, err)
		}

		rec, err := g.sessions.Resolve(ctx, claims.SessionToken, session.KeySessionToken)
		if err != nil {
			return nil, err
		}

		// The token's principal must own the record it points at
		if rec.UserID != claims.Principal {
			return nil, ErrInvalidCredential
		}

		return rec, nil
	}

	if !hadCredential {
		return nil, ErrNoCredential
	}
	return nil, session.ErrNotFound
}

// RequireRole checks the resolved principal's role against the allowed set.
// This is a boundary concern: the lifecycle manager itself knows nothing
// about authorization.
func RequireRole(rec *session.Record, allowed ...session.Role) error {
	for _, role := range allowed {
		if rec.Role == role {
			return nil
		}
	}
	return ErrInsufficientRole
}
