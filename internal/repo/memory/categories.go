package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/geocoder89/antologia/internal/domain/category"
)

type CategoriesRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]category.Category
}

func NewCategoriesRepo() *CategoriesRepo {
	return &CategoriesRepo{items: make(map[int64]category.Category)}
}

func (r *CategoriesRepo) Create(_ context.Context, req category.CreateCategoryRequest) (category.Category, error) {
	c := category.NewFromCreateRequest(req)
	if c.Slug == "" {
		return category.Category{}, category.ErrBlankName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Slug == c.Slug {
			return category.Category{}, category.ErrSlugTaken
		}
	}

	r.nextID++
	c.ID = r.nextID
	r.items[c.ID] = c

	return c, nil
}

func (r *CategoriesRepo) List(_ context.Context) ([]category.Category, error) {
	r.mu.RLock()
	out := make([]category.Category, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *CategoriesRepo) GetByID(_ context.Context, id int64) (category.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok {
		return category.Category{}, category.ErrNotFound
	}

	return c, nil
}
