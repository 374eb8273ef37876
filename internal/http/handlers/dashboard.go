package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/antologia/internal/actorctx"
	"github.com/geocoder89/antologia/internal/config"
	"github.com/geocoder89/antologia/internal/domain/article"
	"github.com/geocoder89/antologia/internal/domain/category"
	"github.com/geocoder89/antologia/internal/session"
	"github.com/gin-gonic/gin"
)

type ArticleStore interface {
	ArticleReader
	Create(ctx context.Context, req article.CreateArticleRequest) (article.Article, error)
	Update(ctx context.Context, id int64, req article.UpdateArticleRequest) (article.Article, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryLister interface {
	List(ctx context.Context) ([]category.Category, error)
}

// DashboardHandler serves the logged-in article pages. The router has already
// checked the privilege level; ownership is checked here.
type DashboardHandler struct {
	articles   ArticleStore
	categories CategoryLister
	render     Renderer
	base       string
	log        *slog.Logger
}

func NewDashboardHandler(articles ArticleStore, categories CategoryLister, render Renderer, basePath string, log *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		articles:   articles,
		categories: categories,
		render:     render,
		base:       basePath,
		log:        log,
	}
}

// Dashboard lists drafts and published articles. Editors and admins see
// everyone's, authors see their own, subscribers see nothing.
func (h *DashboardHandler) Dashboard(ctx *gin.Context) {
	s := actorctx.SessionFrom(ctx.Request.Context())
	limit, offset := page(ctx)

	cctx, cancel := config.WithRequestTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	drafts := []article.Article{}
	published := []article.Article{}

	var err error
	switch {
	case s.IsEditor():
		drafts, err = article.GetAll(cctx, h.articles, article.StatusDraft, limit, offset)
		if err == nil {
			published, err = article.GetAll(cctx, h.articles, article.StatusPublished, limit, offset)
		}
	case s.IsAuthor():
		drafts, err = article.GetByAuthor(cctx, h.articles, s.UserID, article.StatusDraft, limit, offset)
		if err == nil {
			published, err = article.GetByAuthor(cctx, h.articles, s.UserID, article.StatusPublished, limit, offset)
		}
	}
	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "dashboard list failed", "err", err)
		renderInternal(ctx, h.render, "Could not list articles")
		return
	}

	h.render.Render(ctx, http.StatusOK, ViewDashboard, gin.H{
		"user":      sessionView(s),
		"drafts":    drafts,
		"published": published,
	})
}

func (h *DashboardHandler) NewArticleForm(ctx *gin.Context) {
	data, ok := h.formData(ctx)
	if !ok {
		return
	}
	h.render.Render(ctx, http.StatusOK, ViewNewArticle, data)
}

func (h *DashboardHandler) CreateArticle(ctx *gin.Context) {
	s := actorctx.SessionFrom(ctx.Request.Context())

	var req article.CreateArticleRequest
	details, ok := bindForm(ctx, &req)

	data, loaded := h.formData(ctx)
	if !loaded {
		return
	}
	data["article"] = req

	if !ok {
		renderFormError(ctx, h.render, http.StatusBadRequest, ViewNewArticle, msgCreateArticle, details, data)
		return
	}

	req.AuthorID = s.UserID

	cctx, cancel := config.WithRequestTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	if _, err := h.articles.Create(cctx, req); err != nil {
		var status int
		switch {
		case errors.Is(err, article.ErrSlugTaken):
			status = http.StatusConflict
		case errors.Is(err, article.ErrBlankTitle):
			status = http.StatusBadRequest
		default:
			status = http.StatusInternalServerError
			h.log.ErrorContext(ctx.Request.Context(), "create article failed", "err", err)
		}
		renderFormError(ctx, h.render, status, ViewNewArticle, msgCreateArticle, nil, data)
		return
	}

	ctx.Redirect(http.StatusSeeOther, h.base+"/dashboard")
}

func (h *DashboardHandler) EditArticleForm(ctx *gin.Context) {
	a, ok := h.editable(ctx)
	if !ok {
		return
	}

	data, ok := h.formData(ctx)
	if !ok {
		return
	}
	data["article"] = a

	h.render.Render(ctx, http.StatusOK, ViewEditArticle, data)
}

func (h *DashboardHandler) UpdateArticle(ctx *gin.Context) {
	a, ok := h.editable(ctx)
	if !ok {
		return
	}

	var req article.UpdateArticleRequest
	details, bound := bindForm(ctx, &req)

	data, ok := h.formData(ctx)
	if !ok {
		return
	}
	data["article"] = a

	if !bound {
		renderFormError(ctx, h.render, http.StatusBadRequest, ViewEditArticle, msgUpdateArticle, details, data)
		return
	}

	cctx, cancel := config.WithRequestTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	if _, err := h.articles.Update(cctx, a.ID, req); err != nil {
		if errors.Is(err, article.ErrNotFound) {
			NotFound(h.render)(ctx)
			return
		}
		h.log.ErrorContext(ctx.Request.Context(), "update article failed", "err", err, "article_id", a.ID)
		renderFormError(ctx, h.render, http.StatusInternalServerError, ViewEditArticle, msgUpdateArticle, nil, data)
		return
	}

	ctx.Redirect(http.StatusSeeOther, h.base+"/dashboard")
}

func (h *DashboardHandler) DeleteArticle(ctx *gin.Context) {
	a, ok := h.editable(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithRequestTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.articles.Delete(cctx, a.ID); err != nil {
		if errors.Is(err, article.ErrNotFound) {
			NotFound(h.render)(ctx)
			return
		}
		h.log.ErrorContext(ctx.Request.Context(), "delete article failed", "err", err, "article_id", a.ID)
		renderInternal(ctx, h.render, msgDeleteArticle)
		return
	}

	ctx.Redirect(http.StatusSeeOther, h.base+"/dashboard")
}

// editable loads ?id= and checks the session may change it. It renders the
// 404 or 403 view itself and reports false when the caller should stop.
func (h *DashboardHandler) editable(ctx *gin.Context) (article.Article, bool) {
	id, ok := queryID(ctx)
	if !ok {
		NotFound(h.render)(ctx)
		return article.Article{}, false
	}

	cctx, cancel := config.WithRequestTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	a, err := h.articles.GetByID(cctx, id)
	if err != nil {
		if errors.Is(err, article.ErrNotFound) {
			NotFound(h.render)(ctx)
			return article.Article{}, false
		}
		renderInternal(ctx, h.render, "Could not load article")
		return article.Article{}, false
	}

	if !canEdit(actorctx.SessionFrom(ctx.Request.Context()), a) {
		Forbidden(h.render)(ctx)
		return article.Article{}, false
	}

	return a, true
}

// formData is what every article form needs: the category choices and the
// allowed statuses.
func (h *DashboardHandler) formData(ctx *gin.Context) (gin.H, bool) {
	cctx, cancel := config.WithRequestTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	cats, err := h.categories.List(cctx)
	if err != nil {
		renderInternal(ctx, h.render, "Could not list categories")
		return nil, false
	}

	return gin.H{
		"categories": cats,
		"statuses":   []article.Status{article.StatusDraft, article.StatusPublished, article.StatusArchived},
	}, true
}

func sessionView(s session.Session) gin.H {
	return gin.H{
		"id":       s.UserID,
		"username": s.Username,
		"role":     s.Role,
		"isAuthor": s.IsAuthor(),
		"isEditor": s.IsEditor(),
		"isAdmin":  s.IsAdmin(),
	}
}
