package http

import (
	"net/http"

	"github.com/geocoder89/antologia/internal/domain/user"
	"github.com/geocoder89/antologia/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

// Route is one row of the site's route table. Require is the lowest role
// level allowed through; LevelNone is public and LevelSubscriber means any
// logged-in user.
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Require user.Level
}

type siteHandlers struct {
	public     *handlers.PublicHandler
	auth       *handlers.AuthHandler
	dashboard  *handlers.DashboardHandler
	categories *handlers.CategoriesHandler
}

// routeTable lists every page, relative to the base path.
func routeTable(h siteHandlers) []Route {
	return []Route{
		{http.MethodGet, "/", h.public.Home, user.LevelNone},
		{http.MethodGet, "/article", h.public.Article, user.LevelNone},
		{http.MethodGet, "/category", h.public.Category, user.LevelNone},
		{http.MethodGet, "/author", h.public.Author, user.LevelNone},

		{http.MethodGet, "/login", h.auth.LoginForm, user.LevelNone},
		{http.MethodPost, "/login", h.auth.Login, user.LevelNone},
		{http.MethodGet, "/register", h.auth.RegisterForm, user.LevelNone},
		{http.MethodPost, "/register", h.auth.Register, user.LevelNone},
		{http.MethodGet, "/logout", h.auth.Logout, user.LevelNone},

		{http.MethodGet, "/dashboard", h.dashboard.Dashboard, user.LevelSubscriber},
		{http.MethodGet, "/dashboard/new-article", h.dashboard.NewArticleForm, user.LevelAuthor},
		{http.MethodPost, "/dashboard/new-article", h.dashboard.CreateArticle, user.LevelAuthor},
		{http.MethodGet, "/dashboard/edit-article", h.dashboard.EditArticleForm, user.LevelAuthor},
		{http.MethodPost, "/dashboard/edit-article", h.dashboard.UpdateArticle, user.LevelAuthor},
		{http.MethodPost, "/dashboard/delete-article", h.dashboard.DeleteArticle, user.LevelAuthor},

		{http.MethodGet, "/dashboard/categories", h.categories.List, user.LevelAdmin},
		{http.MethodPost, "/dashboard/categories", h.categories.Create, user.LevelAdmin},
	}
}
