package memory

import (
	"context"
	"sync"
	"time"

	"github.com/geocoder89/antologia/internal/domain/user"
)

type UsersRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{items: make(map[int64]user.User)}
}

func (r *UsersRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Username == u.Username || existing.Email == u.Email {
			return user.User{}, user.ErrAlreadyExists
		}
	}

	if u.Role == "" {
		u.Role = user.DefaultRole
	}

	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now().UTC()
	r.items[u.ID] = u

	return u, nil
}

func (r *UsersRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Username == username {
			return u, nil
		}
	}

	return user.User{}, user.ErrNotFound
}

func (r *UsersRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func (r *UsersRepo) username(id int64) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.items[id].Username
}
