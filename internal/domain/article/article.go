package article

import (
	"context"
	"errors"
	"time"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

type Article struct {
	ID              int64     `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Content         string    `json:"content" db:"content"`
	AuthorID        int64     `json:"authorId" db:"author_id"`
	AuthorName      string    `json:"authorName,omitempty" db:"author_name"`
	CategoryID      *int64    `json:"categoryId,omitempty" db:"category_id"`
	Status          Status    `json:"status" db:"status"`
	Slug            string    `json:"slug" db:"slug"`
	MetaDescription string    `json:"metaDescription,omitempty" db:"meta_description"`
	FeaturedImage   string    `json:"featuredImage,omitempty" db:"featured_image"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

var (
	ErrNotFound   = errors.New("article not found")
	ErrSlugTaken  = errors.New("article slug already in use")
	ErrBlankTitle = errors.New("article title is blank")
)

// CreateArticleRequest is bound from the new-article form. The author comes
// from the session, never from the form.
type CreateArticleRequest struct {
	Title           string `json:"title" form:"title" binding:"required,notblank,max=255"`
	Content         string `json:"content" form:"content" binding:"required"`
	CategoryID      *int64 `json:"categoryId" form:"category_id"`
	Status          Status `json:"status" form:"status" binding:"omitempty,oneof=draft published archived"`
	MetaDescription string `json:"metaDescription" form:"meta_description" binding:"omitempty,max=255"`
	FeaturedImage   string `json:"featuredImage" form:"featured_image" binding:"omitempty,max=255"`
	AuthorID        int64  `json:"-" form:"-"`
}

// a full update payload; slug and author are not part of it.
type UpdateArticleRequest struct {
	Title           string `json:"title" form:"title" binding:"required,notblank,max=255"`
	Content         string `json:"content" form:"content" binding:"required"`
	CategoryID      *int64 `json:"categoryId" form:"category_id"`
	Status          Status `json:"status" form:"status" binding:"omitempty,oneof=draft published archived"`
	MetaDescription string `json:"metaDescription" form:"meta_description" binding:"omitempty,max=255"`
	FeaturedImage   string `json:"featuredImage" form:"featured_image" binding:"omitempty,max=255"`
}

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListFilter selects one page of articles. Nil pointers mean "any".
type ListFilter struct {
	Status     Status
	CategoryID *int64
	AuthorID   *int64
	Limit      int
	Offset     int
}

// Normalize fills defaults: published status, limit in [1, MaxLimit], offset >= 0.
func (f ListFilter) Normalize() ListFilter {
	if f.Status == "" {
		f.Status = StatusPublished
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// Lister is the read side every article store exposes.
type Lister interface {
	List(ctx context.Context, filter ListFilter) ([]Article, error)
}

// GetAll lists articles with the given status, newest first.
func GetAll(ctx context.Context, l Lister, status Status, limit, offset int) ([]Article, error) {
	return l.List(ctx, ListFilter{Status: status, Limit: limit, Offset: offset}.Normalize())
}

func GetByCategory(ctx context.Context, l Lister, categoryID int64, status Status, limit, offset int) ([]Article, error) {
	return l.List(ctx, ListFilter{Status: status, CategoryID: &categoryID, Limit: limit, Offset: offset}.Normalize())
}

func GetByAuthor(ctx context.Context, l Lister, authorID int64, status Status, limit, offset int) ([]Article, error) {
	return l.List(ctx, ListFilter{Status: status, AuthorID: &authorID, Limit: limit, Offset: offset}.Normalize())
}
