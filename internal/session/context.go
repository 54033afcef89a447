package session

import (
	"context"
	"time"
)

type contextKey struct{}

// Identity is the signed-in user for the lifetime of one request.
type Identity struct {
	UserID    int64
	Fullname  string
	ExpiresAt time.Time
}

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the Identity stored by WithIdentity.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
