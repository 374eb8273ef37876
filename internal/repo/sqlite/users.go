package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/geocoder89/antologia/internal/domain/user"
	"github.com/geocoder89/antologia/internal/observability"
	"github.com/jmoiron/sqlx"
)

type UsersRepo struct {
	db   *sqlx.DB
	prom *observability.Prom
}

func NewUsersRepo(db *sqlx.DB, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{db: db, prom: prom}
}

const userSelect = `SELECT id, username, email, password, role,
	COALESCE(bio, '') AS bio, COALESCE(avatar, '') AS avatar, created_at
FROM users`

func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	if u.Role == "" {
		u.Role = user.DefaultRole
	}
	u.CreatedAt = time.Now().UTC()

	err := r.prom.ObserveDB("users.create", func() error {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO users (username, email, password, role, bio, avatar, created_at)
			 VALUES (?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), ?)`,
			u.Username, u.Email, u.PasswordHash, u.Role, u.Bio, u.Avatar, u.CreatedAt,
		)
		if err != nil {
			return err
		}
		u.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrAlreadyExists
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return r.getOne(ctx, "users.get_by_username", userSelect+` WHERE username = ?`, username)
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	return r.getOne(ctx, "users.get_by_id", userSelect+` WHERE id = ?`, id)
}

func (r *UsersRepo) getOne(ctx context.Context, op, query string, arg any) (user.User, error) {
	var u user.User

	err := r.prom.ObserveDB(op, func() error {
		return r.db.GetContext(ctx, &u, query, arg)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}
