package middlewares

import (
	"context"
	"errors"
	"log/slog"

	"github.com/geocoder89/antologia/internal/actorctx"
	"github.com/geocoder89/antologia/internal/auth"
	"github.com/geocoder89/antologia/internal/session"
	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (session.Session, error)
}

// LoadSession attaches the session named by the cookie to the request
// context. A missing, forged or expired cookie leaves the request anonymous;
// gating happens later in RequirePrivilege.
func LoadSession(resolver SessionResolver, cookieName string, log *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(cookieName)
		if err != nil || token == "" {
			ctx.Next()
			return
		}

		s, err := resolver.Resolve(ctx.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) && !errors.Is(err, auth.ErrInvalidToken) {
				log.WarnContext(ctx.Request.Context(), "session lookup failed", "err", err)
			}
			ctx.Next()
			return
		}

		ctx.Request = ctx.Request.WithContext(actorctx.WithSession(ctx.Request.Context(), s))
		ctx.Next()
	}
}
