package db

import (
	"context"
	"errors"
	"testing"

	"github.com/geocoder89/antologia/internal/config"
	"github.com/geocoder89/antologia/internal/domain/user"
	"github.com/geocoder89/antologia/internal/security"
)

type fakeAdminStore struct {
	getFn   func(ctx context.Context, username string) (user.User, error)
	created []user.User
}

func (f *fakeAdminStore) GetByUsername(ctx context.Context, username string) (user.User, error) {
	if f.getFn != nil {
		return f.getFn(ctx, username)
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeAdminStore) Create(_ context.Context, u user.User) (user.User, error) {
	u.ID = int64(len(f.created) + 1)
	f.created = append(f.created, u)
	return u, nil
}

func TestEnsureAdminUser(t *testing.T) {
	full := config.Config{AdminUsername: "admin", AdminEmail: "admin@example.com", AdminPassword: "s3cret"}

	tests := []struct {
		name        string
		cfg         config.Config
		getFn       func(ctx context.Context, username string) (user.User, error)
		wantCreated bool
		wantErr     bool
	}{
		{name: "creates when missing", cfg: full, wantCreated: true},
		{name: "skips without password", cfg: config.Config{AdminUsername: "admin", AdminEmail: "a@b.c"}},
		{name: "skips without email", cfg: config.Config{AdminUsername: "admin", AdminPassword: "x"}},
		{
			name: "skips when present",
			cfg:  full,
			getFn: func(ctx context.Context, username string) (user.User, error) {
				return user.User{ID: 1, Username: username}, nil
			},
		},
		{
			name: "lookup error",
			cfg:  full,
			getFn: func(ctx context.Context, username string) (user.User, error) {
				return user.User{}, errors.New("db down")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeAdminStore{getFn: tt.getFn}

			created, err := EnsureAdminUser(context.Background(), store, tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if created != tt.wantCreated {
				t.Fatalf("created = %v, want %v", created, tt.wantCreated)
			}
			if !tt.wantCreated {
				if len(store.created) != 0 {
					t.Fatalf("no user should be created, got %d", len(store.created))
				}
				return
			}

			u := store.created[0]
			if u.Role != user.RoleAdmin || u.Username != "admin" || u.Email != "admin@example.com" {
				t.Fatalf("unexpected admin %+v", u)
			}
			if err := security.CheckPassword(u.PasswordHash, "s3cret"); err != nil {
				t.Fatalf("stored hash does not match the configured password: %v", err)
			}
		})
	}
}
