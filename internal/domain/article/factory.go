package article

import (
	"time"

	"github.com/geocoder89/antologia/internal/utils"
)

// NewFromCreateRequest builds the row to insert. The slug is derived here,
// once; updates never regenerate it.
func NewFromCreateRequest(req CreateArticleRequest) Article {
	now := time.Now().UTC()

	status := req.Status
	if status == "" {
		status = StatusDraft
	}

	return Article{
		Title:           req.Title,
		Content:         req.Content,
		AuthorID:        req.AuthorID,
		CategoryID:      normalizeCategory(req.CategoryID),
		Status:          status,
		Slug:            utils.GenerateSlug(req.Title),
		MetaDescription: req.MetaDescription,
		FeaturedImage:   req.FeaturedImage,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// ApplyUpdate returns a copy of a with every mutable field replaced.
func ApplyUpdate(a Article, req UpdateArticleRequest) Article {
	status := req.Status
	if status == "" {
		status = StatusDraft
	}

	a.Title = req.Title
	a.Content = req.Content
	a.CategoryID = normalizeCategory(req.CategoryID)
	a.Status = status
	a.MetaDescription = req.MetaDescription
	a.FeaturedImage = req.FeaturedImage
	a.UpdatedAt = time.Now().UTC()

	return a
}

// an empty form field binds as a pointer to 0; treat it and any non-positive
// id as "no category".
func normalizeCategory(id *int64) *int64 {
	if id == nil || *id <= 0 {
		return nil
	}
	v := *id
	return &v
}
