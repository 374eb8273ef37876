package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/antologia/internal/config"
	"github.com/geocoder89/antologia/internal/domain/category"
	"github.com/gin-gonic/gin"
)

type CategoryStore interface {
	CategoryLister
	Create(ctx context.Context, req category.CreateCategoryRequest) (category.Category, error)
}

type CategoriesHandler struct {
	categories CategoryStore
	render     Renderer
	base       string
	log        *slog.Logger
}

func NewCategoriesHandler(categories CategoryStore, render Renderer, basePath string, log *slog.Logger) *CategoriesHandler {
	return &CategoriesHandler{
		categories: categories,
		render:     render,
		base:       basePath,
		log:        log,
	}
}

func (h *CategoriesHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithRequestTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	cats, err := h.categories.List(cctx)
	if err != nil {
		renderInternal(ctx, h.render, "Could not list categories")
		return
	}

	h.render.Render(ctx, http.StatusOK, ViewCategories, gin.H{"categories": cats})
}

func (h *CategoriesHandler) Create(ctx *gin.Context) {
	var req category.CreateCategoryRequest
	details, ok := bindForm(ctx, &req)

	cctx, cancel := config.WithRequestTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	data := gin.H{"category": req}
	if cats, err := h.categories.List(cctx); err == nil {
		data["categories"] = cats
	}

	if !ok {
		renderFormError(ctx, h.render, http.StatusBadRequest, ViewCategories, msgCreateCategory, details, data)
		return
	}

	if _, err := h.categories.Create(cctx, req); err != nil {
		var status int
		switch {
		case errors.Is(err, category.ErrSlugTaken):
			status = http.StatusConflict
		case errors.Is(err, category.ErrBlankName):
			status = http.StatusBadRequest
		default:
			status = http.StatusInternalServerError
			h.log.ErrorContext(ctx.Request.Context(), "create category failed", "err", err)
		}
		renderFormError(ctx, h.render, status, ViewCategories, msgCreateCategory, nil, data)
		return
	}

	ctx.Redirect(http.StatusSeeOther, h.base+"/dashboard/categories")
}
