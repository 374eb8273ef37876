// Package actorctx carries the current session through a request context.
package actorctx

import (
	"context"

	"github.com/geocoder89/antologia/internal/session"
)

type ctxKey struct{}

func WithSession(ctx context.Context, s session.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// SessionFrom returns the request's session, or the zero (anonymous) session.
func SessionFrom(ctx context.Context) session.Session {
	s, _ := ctx.Value(ctxKey{}).(session.Session)
	return s
}
