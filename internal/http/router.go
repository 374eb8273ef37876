package http

import (
	"context"
	"log/slog"

	"github.com/geocoder89/antologia/internal/config"
	"github.com/geocoder89/antologia/internal/domain/user"
	"github.com/geocoder89/antologia/internal/http/handlers"
	"github.com/geocoder89/antologia/internal/http/middlewares"
	"github.com/geocoder89/antologia/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Sessions is the directory as the web layer sees it.
type Sessions interface {
	handlers.Directory
	middlewares.SessionResolver
}

type Deps struct {
	Log        *slog.Logger
	Cfg        config.Config
	Users      handlers.AuthorReader
	Articles   handlers.ArticleStore
	Categories handlers.CategoryStore
	Sessions   Sessions

	// optional
	Render  handlers.Renderer
	Ping    func(ctx context.Context) error
	Prom    *observability.Prom
	Metrics prometheus.Gatherer
}

func NewRouter(d Deps) *gin.Engine {
	if d.Cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	render := d.Render
	if render == nil {
		render = handlers.JSONRenderer{}
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("antologia"))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(d.Cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(d.Cfg.MaxBodyBytes))
	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.LoadSession(d.Sessions, d.Cfg.SessionCookie, d.Log))
	r.Use(middlewares.RequestLogger(d.Log))

	// health and metrics sit outside the base path
	h := handlers.NewHealthHandler(d.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Metrics, promhttp.HandlerOpts{})))
	}

	base := d.Cfg.BasePath
	cookie := handlers.SessionCookie{
		Name:   d.Cfg.SessionCookie,
		Path:   base,
		Secure: d.Cfg.Env == "prod",
	}

	site := siteHandlers{
		public:     handlers.NewPublicHandler(d.Articles, d.Categories, d.Users, render),
		auth:       handlers.NewAuthHandler(d.Sessions, cookie, render, base, d.Log),
		dashboard:  handlers.NewDashboardHandler(d.Articles, d.Categories, render, base, d.Log),
		categories: handlers.NewCategoriesHandler(d.Categories, render, base, d.Log),
	}

	mount(r.Group(base), routeTable(site), base+"/login", handlers.Forbidden(render))

	r.NoRoute(handlers.NotFound(render))

	return r
}

func mount(g *gin.RouterGroup, routes []Route, loginURL string, forbidden gin.HandlerFunc) {
	for _, rt := range routes {
		if rt.Require == user.LevelNone {
			g.Handle(rt.Method, rt.Path, rt.Handler)
			continue
		}
		g.Handle(rt.Method, rt.Path, middlewares.RequirePrivilege(rt.Require, loginURL, forbidden), rt.Handler)
	}
}
