package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/geocoder89/antologia/internal/actorctx"
	"github.com/geocoder89/antologia/internal/config"
	"github.com/geocoder89/antologia/internal/domain/article"
	"github.com/geocoder89/antologia/internal/domain/category"
	"github.com/geocoder89/antologia/internal/domain/user"
	"github.com/geocoder89/antologia/internal/session"
	"github.com/gin-gonic/gin"
)

type ArticleReader interface {
	GetByID(ctx context.Context, id int64) (article.Article, error)
	List(ctx context.Context, filter article.ListFilter) ([]article.Article, error)
}

type CategoryReader interface {
	List(ctx context.Context) ([]category.Category, error)
	GetByID(ctx context.Context, id int64) (category.Category, error)
}

type AuthorReader interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
}

// PublicHandler serves the pages anyone may read.
type PublicHandler struct {
	articles   ArticleReader
	categories CategoryReader
	authors    AuthorReader
	render     Renderer
}

func NewPublicHandler(articles ArticleReader, categories CategoryReader, authors AuthorReader, render Renderer) *PublicHandler {
	return &PublicHandler{
		articles:   articles,
		categories: categories,
		authors:    authors,
		render:     render,
	}
}

func (h *PublicHandler) Home(ctx *gin.Context) {
	limit, offset := page(ctx)

	cctx, cancel := config.WithRequestTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	articles, err := article.GetAll(cctx, h.articles, article.StatusPublished, limit, offset)
	if err != nil {
		renderInternal(ctx, h.render, "Could not list articles")
		return
	}

	h.render.Render(ctx, http.StatusOK, ViewHome, gin.H{
		"articles": articles,
		"limit":    limit,
		"offset":   offset,
	})
}

// Article shows one article. Unpublished articles exist only for the people
// allowed to edit them; everyone else gets the 404 view.
func (h *PublicHandler) Article(ctx *gin.Context) {
	id, ok := queryID(ctx)
	if !ok {
		NotFound(h.render)(ctx)
		return
	}

	cctx, cancel := config.WithRequestTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	a, err := h.articles.GetByID(cctx, id)
	if err != nil {
		if errors.Is(err, article.ErrNotFound) {
			NotFound(h.render)(ctx)
			return
		}
		renderInternal(ctx, h.render, "Could not load article")
		return
	}

	if a.Status != article.StatusPublished && !canEdit(actorctx.SessionFrom(ctx.Request.Context()), a) {
		NotFound(h.render)(ctx)
		return
	}

	h.render.Render(ctx, http.StatusOK, ViewArticle, gin.H{"article": a})
}

func (h *PublicHandler) Category(ctx *gin.Context) {
	id, ok := queryID(ctx)
	if !ok {
		NotFound(h.render)(ctx)
		return
	}

	limit, offset := page(ctx)

	cctx, cancel := config.WithRequestTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	c, err := h.categories.GetByID(cctx, id)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			NotFound(h.render)(ctx)
			return
		}
		renderInternal(ctx, h.render, "Could not load category")
		return
	}

	articles, err := article.GetByCategory(cctx, h.articles, id, article.StatusPublished, limit, offset)
	if err != nil {
		renderInternal(ctx, h.render, "Could not list articles")
		return
	}

	h.render.Render(ctx, http.StatusOK, ViewCategory, gin.H{
		"category": c,
		"articles": articles,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *PublicHandler) Author(ctx *gin.Context) {
	id, ok := queryID(ctx)
	if !ok {
		NotFound(h.render)(ctx)
		return
	}

	limit, offset := page(ctx)

	cctx, cancel := config.WithRequestTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	u, err := h.authors.GetByID(cctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			NotFound(h.render)(ctx)
			return
		}
		renderInternal(ctx, h.render, "Could not load author")
		return
	}

	articles, err := article.GetByAuthor(cctx, h.articles, id, article.StatusPublished, limit, offset)
	if err != nil {
		renderInternal(ctx, h.render, "Could not list articles")
		return
	}

	h.render.Render(ctx, http.StatusOK, ViewAuthor, gin.H{
		// email stays private
		"author": gin.H{
			"id":       u.ID,
			"username": u.Username,
			"bio":      u.Bio,
			"avatar":   u.Avatar,
		},
		"articles": articles,
		"limit":    limit,
		"offset":   offset,
	})
}

// canEdit: editors and admins may touch any article, authors only their own.
func canEdit(s session.Session, a article.Article) bool {
	if s.IsEditor() {
		return true
	}
	return s.IsAuthor() && a.AuthorID == s.UserID
}
