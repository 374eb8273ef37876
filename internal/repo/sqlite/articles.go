package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/geocoder89/antologia/internal/domain/article"
	"github.com/geocoder89/antologia/internal/observability"
	"github.com/jmoiron/sqlx"
)

type ArticlesRepo struct {
	db   *sqlx.DB
	prom *observability.Prom
}

func NewArticlesRepo(db *sqlx.DB, prom *observability.Prom) *ArticlesRepo {
	return &ArticlesRepo{db: db, prom: prom}
}

const articleSelect = `SELECT a.id, a.title, a.content, a.author_id,
	COALESCE(u.username, '') AS author_name, a.category_id, a.status,
	COALESCE(a.slug, '') AS slug, COALESCE(a.meta_description, '') AS meta_description,
	COALESCE(a.featured_image, '') AS featured_image, a.created_at, a.updated_at
FROM articles a
LEFT JOIN users u ON u.id = a.author_id`

func (r *ArticlesRepo) Create(ctx context.Context, req article.CreateArticleRequest) (article.Article, error) {
	a := article.NewFromCreateRequest(req)
	if a.Slug == "" {
		return article.Article{}, article.ErrBlankTitle
	}

	err := r.prom.ObserveDB("articles.create", func() error {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO articles (title, content, author_id, category_id, status, slug,
				meta_description, featured_image, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, ?)`,
			a.Title, a.Content, a.AuthorID, a.CategoryID, a.Status, a.Slug,
			a.MetaDescription, a.FeaturedImage, a.CreatedAt, a.UpdatedAt,
		)
		if err != nil {
			return err
		}
		a.ID, err = res.LastInsertId()
		return err
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
		return r.db.GetContext(ctx, &a, articleSelect+` WHERE a.id = ?`, id)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return article.Article{}, article.ErrNotFound
		}
		return article.Article{}, err
	}

	return a, nil
}

func (r *ArticlesRepo) Update(ctx context.Context, id int64, req article.UpdateArticleRequest) (article.Article, error) {
	upd := article.ApplyUpdate(article.Article{ID: id}, req)

	err := r.prom.ObserveDB("articles.update", func() error {
		res, err := r.db.ExecContext(ctx,
			`UPDATE articles
			 SET title = ?, content = ?, category_id = ?, status = ?,
			     meta_description = NULLIF(?, ''), featured_image = NULLIF(?, ''), updated_at = ?
			 WHERE id = ?`,
			upd.Title, upd.Content, upd.CategoryID, upd.Status,
			upd.MetaDescription, upd.FeaturedImage, upd.UpdatedAt, id,
		)
		if err != nil {
			return err
		}
		return requireRow(res)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return article.Article{}, article.ErrNotFound
		}
		return article.Article{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *ArticlesRepo) Delete(ctx context.Context, id int64) error {
	err := r.prom.ObserveDB("articles.delete", func() error {
		res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return requireRow(res)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return article.ErrNotFound
	}
	return err
}

func (r *ArticlesRepo) List(ctx context.Context, filter article.ListFilter) ([]article.Article, error) {
	filter = filter.Normalize()

	conds := []string{"a.status = ?"}
	args := []any{filter.Status}

	if filter.CategoryID != nil {
		conds = append(conds, "a.category_id = ?")
		args = append(args, *filter.CategoryID)
	}

	if filter.AuthorID != nil {
		conds = append(conds, "a.author_id = ?")
		args = append(args, *filter.AuthorID)
	}

	query := articleSelect + " WHERE " + strings.Join(conds, " AND ") +
		" ORDER BY a.created_at DESC, a.id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	out := make([]article.Article, 0, filter.Limit)

	err := r.prom.ObserveDB("articles.list", func() error {
		return r.db.SelectContext(ctx, &out, query, args...)
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// requireRow turns a statement that touched nothing into sql.ErrNoRows.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
