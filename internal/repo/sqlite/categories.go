package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/geocoder89/antologia/internal/domain/category"
	"github.com/geocoder89/antologia/internal/observability"
	"github.com/jmoiron/sqlx"
)

type CategoriesRepo struct {
	db   *sqlx.DB
	prom *observability.Prom
}

func NewCategoriesRepo(db *sqlx.DB, prom *observability.Prom) *CategoriesRepo {
	return &CategoriesRepo{db: db, prom: prom}
}

const categorySelect = `SELECT id, name, COALESCE(description, '') AS description, COALESCE(slug, '') AS slug
FROM categories`

func (r *CategoriesRepo) Create(ctx context.Context, req category.CreateCategoryRequest) (category.Category, error) {
	c := category.NewFromCreateRequest(req)
	if c.Slug == "" {
		return category.Category{}, category.ErrBlankName
	}

	err := r.prom.ObserveDB("categories.create", func() error {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO categories (name, description, slug) VALUES (?, NULLIF(?, ''), ?)`,
			c.Name, c.Description, c.Slug,
		)
		if err != nil {
			return err
		}
		c.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return category.Category{}, category.ErrSlugTaken
		}
		return category.Category{}, err
	}

	return c, nil
}

func (r *CategoriesRepo) List(ctx context.Context) ([]category.Category, error) {
	out := make([]category.Category, 0)

	err := r.prom.ObserveDB("categories.list", func() error {
		return r.db.SelectContext(ctx, &out, categorySelect+` ORDER BY name ASC, id ASC`)
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *CategoriesRepo) GetByID(ctx context.Context, id int64) (category.Category, error) {
	var c category.Category

	err := r.prom.ObserveDB("categories.get_by_id", func() error {
		return r.db.GetContext(ctx, &c, categorySelect+` WHERE id = ?`, id)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return category.Category{}, category.ErrNotFound
		}
		return category.Category{}, err
	}

	return c, nil
}
