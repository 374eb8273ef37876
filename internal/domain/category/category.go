package category

import (
	"errors"

	"github.com/geocoder89/antologia/internal/utils"
)

type Category struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`
	Slug        string `json:"slug" db:"slug"`
}

var (
	ErrNotFound  = errors.New("category not found")
	ErrSlugTaken = errors.New("category slug already in use")
	ErrBlankName = errors.New("category name is blank")
)

type CreateCategoryRequest struct {
	Name        string `json:"name" form:"name" binding:"required,notblank,max=100"`
	Description string `json:"description" form:"description" binding:"omitempty,max=1000"`
}

func NewFromCreateRequest(req CreateCategoryRequest) Category {
	return Category{
		Name:        req.Name,
		Description: req.Description,
		Slug:        utils.GenerateSlug(req.Name),
	}
}
