// Package session holds the per-client login state and the stores that keep it.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/geocoder89/antologia/internal/domain/user"
)

var ErrNotFound = errors.New("session not found")

// Session is the server-side record a session cookie points at.
type Session struct {
	UserID   int64     `json:"user_id"`
	Username string    `json:"username"`
	Role     user.Role `json:"role"`
}

func (s Session) IsLoggedIn() bool {
	return s.UserID > 0
}

func (s Session) Has(required user.Level) bool {
	return s.IsLoggedIn() && user.HasPrivilege(s.Role, required)
}

func (s Session) IsAuthor() bool { return s.Has(user.LevelAuthor) }
func (s Session) IsEditor() bool { return s.Has(user.LevelEditor) }
func (s Session) IsAdmin() bool  { return s.Has(user.LevelAdmin) }

// Store is a key-value store for sessions keyed by session id. Get and Delete
// return ErrNotFound when no live session is stored under id.
type Store interface {
	Save(ctx context.Context, id string, s Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
