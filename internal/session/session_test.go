package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/geocoder89/antologia/internal/domain/user"
	"github.com/redis/go-redis/v9"
)

func TestSessionPredicates(t *testing.T) {
	tests := []struct {
		name                     string
		s                        Session
		loggedIn, author, editor bool
		admin                    bool
	}{
		{"anonymous", Session{}, false, false, false, false},
		{"subscriber", Session{UserID: 1, Role: user.RoleSubscriber}, true, false, false, false},
		{"author", Session{UserID: 1, Role: user.RoleAuthor}, true, true, false, false},
		{"editor", Session{UserID: 1, Role: user.RoleEditor}, true, true, true, false},
		{"admin", Session{UserID: 1, Role: user.RoleAdmin}, true, true, true, true},
		{"role without user", Session{Role: user.RoleAdmin}, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.IsLoggedIn(); got != tt.loggedIn {
				t.Fatalf("IsLoggedIn = %v", got)
			}
			if got := tt.s.IsAuthor(); got != tt.author {
				t.Fatalf("IsAuthor = %v", got)
			}
			if got := tt.s.IsEditor(); got != tt.editor {
				t.Fatalf("IsEditor = %v", got)
			}
			if got := tt.s.IsAdmin(); got != tt.admin {
				t.Fatalf("IsAdmin = %v", got)
			}
		})
	}
}

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	want := Session{UserID: 7, Username: "ana", Role: user.RoleEditor}

	if err := store.Save(ctx, "abc", want, time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Delete(ctx, "abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, "abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should report ErrNotFound, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	_ = store.Save(context.Background(), "abc", Session{UserID: 1}, time.Minute)

	_ = store.Save(context.Background(), "def", Session{UserID: 2}, time.Minute)

	now = now.Add(2 * time.Minute)
	if _, err := store.Get(context.Background(), "abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
	if err := store.Delete(context.Background(), "def"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting an expired session should report ErrNotFound, got %v", err)
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewRedisStore(rdb)
	exerciseStore(t, store)

	_ = store.Save(context.Background(), "ttl", Session{UserID: 1}, time.Minute)
	if ttl := mr.TTL(keyPrefix + "ttl"); ttl != time.Minute {
		t.Fatalf("expected ttl to be set, got %v", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := store.Get(context.Background(), "ttl"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
	if err := store.Delete(context.Background(), "ttl"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting an expired session should report ErrNotFound, got %v", err)
	}

	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
