package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/geocoder89/antologia/internal/domain/article"
)

// ArticlesRepo keeps articles in a map. When users is set, reads fill
// AuthorName the way the SQL join does.
type ArticlesRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]article.Article
	users  *UsersRepo
}

func NewArticlesRepo(users *UsersRepo) *ArticlesRepo {
	return &ArticlesRepo{
		items: make(map[int64]article.Article),
		users: users,
	}
}

func (r *ArticlesRepo) Create(_ context.Context, req article.CreateArticleRequest) (article.Article, error) {
	a := article.NewFromCreateRequest(req)
	if a.Slug == "" {
		return article.Article{}, article.ErrBlankTitle
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Slug == a.Slug {
			return article.Article{}, article.ErrSlugTaken
		}
	}

	r.nextID++
	a.ID = r.nextID
	r.items[a.ID] = a

	return r.withAuthor(a), nil
}

func (r *ArticlesRepo) GetByID(_ context.Context, id int64) (article.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[id]
	if !ok {
		return article.Article{}, article.ErrNotFound
	}

	return r.withAuthor(a), nil
}

func (r *ArticlesRepo) Update(_ context.Context, id int64, req article.UpdateArticleRequest) (article.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[id]
	if !ok {
		return article.Article{}, article.ErrNotFound
	}

	a = article.ApplyUpdate(a, req)
	r.items[id] = a

	return r.withAuthor(a), nil
}

func (r *ArticlesRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return article.ErrNotFound
	}

	delete(r.items, id)
	return nil
}

func (r *ArticlesRepo) List(_ context.Context, filter article.ListFilter) ([]article.Article, error) {
	filter = filter.Normalize()

	r.mu.RLock()
	matched := make([]article.Article, 0)
	for _, a := range r.items {
		if a.Status != filter.Status {
			continue
		}
		if filter.CategoryID != nil && (a.CategoryID == nil || *a.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.AuthorID != nil && a.AuthorID != *filter.AuthorID {
			continue
		}
		matched = append(matched, r.withAuthor(a))
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if filter.Offset >= len(matched) {
		return []article.Article{}, nil
	}

	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[filter.Offset:end], nil
}

func (r *ArticlesRepo) withAuthor(a article.Article) article.Article {
	if r.users != nil {
		a.AuthorName = r.users.username(a.AuthorID)
	}
	return a
}
