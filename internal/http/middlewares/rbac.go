package middlewares

import (
	"net/http"

	"github.com/geocoder89/antologia/internal/actorctx"
	"github.com/geocoder89/antologia/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// RequirePrivilege gates a route on the session's role. Without a session the
// client is sent to loginURL; with one that ranks too low, forbidden renders
// the response and the chain stops.
func RequirePrivilege(required user.Level, loginURL string, forbidden gin.HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if required == user.LevelNone {
			ctx.Next()
			return
		}

		s := actorctx.SessionFrom(ctx.Request.Context())

		if !s.IsLoggedIn() {
			ctx.Redirect(http.StatusSeeOther, loginURL)
			ctx.Abort()
			return
		}

		if !s.Has(required) {
			forbidden(ctx)
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
