package authgate

import (
	"context"

	"github.com/notebank/notebank/pkg/session"
)

type recordContextKey struct{}

// WithRecord adds a resolved session record to the context
func WithRecord(ctx context.Context, rec *session.Record) context.Context {
	return context.WithValue(ctx, recordContextKey{}, rec)
}

// FromContext retrieves the resolved session record from the context
func FromContext(ctx context.Context) (*session.Record, bool) {
	rec, ok := ctx.Value(recordContextKey{}).(*session.Record)
	return rec, ok
}

// MustFromContext retrieves the resolved session record or panics
func MustFromContext(ctx context.Context) *session.Record {
	rec, ok := FromContext(ctx)
	if !ok {
		panic("authgate: no session record in context")
	}
	return rec
}

// UserIDFromContext retrieves the principal's user ID from the context
func UserIDFromContext(ctx context.Context) (string, bool) {
	rec, ok := FromContext(ctx)
	if !ok {
		return "", false
	}
	return rec.UserID, true
}
