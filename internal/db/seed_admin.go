package db

import (
	"context"
	"errors"

	"github.com/geocoder89/antologia/internal/config"
	"github.com/geocoder89/antologia/internal/domain/user"
	"github.com/geocoder89/antologia/internal/security"
)

type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
	Create(ctx context.Context, u user.User) (user.User, error)
}

// EnsureAdminUser creates the configured admin account once. Registration only
// ever produces authors, so this is how the first admin comes to exist.
func EnsureAdminUser(ctx context.Context, users AdminStore, cfg config.Config) (created bool, err error) {
	if cfg.AdminUsername == "" || cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return false, nil
	}

	_, err = users.GetByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		return false, nil
	}

	if !errors.Is(err, user.ErrNotFound) {
		return false, err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)
	if err != nil {
		return false, err
	}

	_, err = users.Create(ctx, user.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
	})
	if err != nil {
		return false, err
	}

	return true, nil
}
