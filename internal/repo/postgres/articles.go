package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/geocoder89/antologia/internal/domain/article"
	"github.com/geocoder89/antologia/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ArticlesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewArticlesRepo(pool *pgxpool.Pool, prom *observability.Prom) *ArticlesRepo {
	return &ArticlesRepo{pool: pool, prom: prom}
}

const articleSelect = `SELECT a.id, a.title, a.content, a.author_id, COALESCE(u.username, ''),
	a.category_id, a.status, COALESCE(a.slug, ''), COALESCE(a.meta_description, ''),
	COALESCE(a.featured_image, ''), a.created_at, a.updated_at
FROM articles a
LEFT JOIN users u ON u.id = a.author_id`

func scanArticle(row pgx.Row) (article.Article, error) {
	var a article.Article
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Content,
		&a.AuthorID,
		&a.AuthorName,
		&a.CategoryID,
		&a.Status,
		&a.Slug,
		&a.MetaDescription,
		&a.FeaturedImage,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

func (r *ArticlesRepo) Create(ctx context.Context, req article.CreateArticleRequest) (article.Article, error) {
	a := article.NewFromCreateRequest(req)
	if a.Slug == "" {
		return article.Article{}, article.ErrBlankTitle
	}

	err := r.prom.ObserveDB("articles.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO articles (title, content, author_id, category_id, status, slug,
				meta_description, featured_image, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10)
			 RETURNING id`,
			a.Title, a.Content, a.AuthorID, a.CategoryID, a.Status, a.Slug,
			a.MetaDescription, a.FeaturedImage, a.CreatedAt, a.UpdatedAt,
		).Scan(&a.ID)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return article.Article{}, article.ErrSlugTaken
		}
		return article.Article{}, err
	}

	return a, nil
}

func (r *ArticlesRepo) GetByID(ctx context.Context, id int64) (article.Article, error) {
	var a article.Article

	err := r.prom.ObserveDB("articles.get_by_id", func() error {
		var err error
		a, err = scanArticle(r.pool.QueryRow(ctx, articleSelect+` WHERE a.id = $1`, id))
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return article.Article{}, article.ErrNotFound
		}
		return article.Article{}, err
	}

	return a, nil
}

// Update replaces the mutable fields of article id. Slug and author stay as
// they were; a missing id is article.ErrNotFound and writes nothing.
func (r *ArticlesRepo) Update(ctx context.Context, id int64, req article.UpdateArticleRequest) (article.Article, error) {
	upd := article.ApplyUpdate(article.Article{ID: id}, req)

	err := r.prom.ObserveDB("articles.update", func() error {
		tag, err := r.pool.Exec(ctx,
			`UPDATE articles
			 SET title = $2,
			     content = $3,
			     category_id = $4,
			     status = $5,
			     meta_description = NULLIF($6, ''),
			     featured_image = NULLIF($7, ''),
			     updated_at = $8
			 WHERE id = $1`,
			id, upd.Title, upd.Content, upd.CategoryID, upd.Status,
			upd.MetaDescription, upd.FeaturedImage, upd.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return article.Article{}, article.ErrNotFound
		}
		return article.Article{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *ArticlesRepo) Delete(ctx context.Context, id int64) error {
	err := r.prom.ObserveDB("articles.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return article.ErrNotFound
		}
		return err
	}

	return nil
}

// List returns one page of articles matching filter, newest first.
func (r *ArticlesRepo) List(ctx context.Context, filter article.ListFilter) ([]article.Article, error) {
	filter = filter.Normalize()

	conds := []string{"a.status = $1"}
	args := []any{filter.Status}
	pos := 2

	if filter.CategoryID != nil {
		conds = append(conds, fmt.Sprintf("a.category_id = $%d", pos))
		args = append(args, *filter.CategoryID)
		pos++
	}

	if filter.AuthorID != nil {
		conds = append(conds, fmt.Sprintf("a.author_id = $%d", pos))
		args = append(args, *filter.AuthorID)
		pos++
	}

	query := articleSelect + " WHERE " + strings.Join(conds, " AND ")
	// stable ordering for offset paging
	query += fmt.Sprintf(" ORDER BY a.created_at DESC, a.id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	out := make([]article.Article, 0, filter.Limit)

	err := r.prom.ObserveDB("articles.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			a, err := scanArticle(rows)
			if err != nil {
				return err
			}
			out = append(out, a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
