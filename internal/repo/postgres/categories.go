package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/antologia/internal/domain/category"
	"github.com/geocoder89/antologia/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoriesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewCategoriesRepo(pool *pgxpool.Pool, prom *observability.Prom) *CategoriesRepo {
	return &CategoriesRepo{pool: pool, prom: prom}
}

func (r *CategoriesRepo) Create(ctx context.Context, req category.CreateCategoryRequest) (category.Category, error) {
	c := category.NewFromCreateRequest(req)
	if c.Slug == "" {
		return category.Category{}, category.ErrBlankName
	}

	err := r.prom.ObserveDB("categories.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO categories (name, description, slug)
			 VALUES ($1, NULLIF($2, ''), $3)
			 RETURNING id`,
			c.Name, c.Description, c.Slug,
		).Scan(&c.ID)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return category.Category{}, category.ErrSlugTaken
		}
		return category.Category{}, err
	}

	return c, nil
}

// List returns every category ordered by name.
func (r *CategoriesRepo) List(ctx context.Context) ([]category.Category, error) {
	out := make([]category.Category, 0)

	err := r.prom.ObserveDB("categories.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, name, COALESCE(description, ''), COALESCE(slug, '')
			 FROM categories
			 ORDER BY name ASC, id ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var c category.Category
			if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Slug); err != nil {
				return err
			}
			out = append(out, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *CategoriesRepo) GetByID(ctx context.Context, id int64) (category.Category, error) {
	var c category.Category

	err := r.prom.ObserveDB("categories.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, name, COALESCE(description, ''), COALESCE(slug, '')
			 FROM categories WHERE id = $1`, id,
		).Scan(&c.ID, &c.Name, &c.Description, &c.Slug)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.Category{}, category.ErrNotFound
		}
		return category.Category{}, err
	}

	return c, nil
}
