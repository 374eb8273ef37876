package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/antologia/internal/domain/user"
	"github.com/geocoder89/antologia/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

const userColumns = `id, username, email, password, role, COALESCE(bio, ''), COALESCE(avatar, ''), created_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.Bio, &u.Avatar, &u.CreatedAt)
	return u, err
}

// Create inserts u and returns it with the generated id and created_at.
// A taken username or email maps to user.ErrAlreadyExists.
func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	if u.Role == "" {
		u.Role = user.DefaultRole
	}

	err := r.prom.ObserveDB("users.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO users (username, email, password, role, bio, avatar)
			 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
			 RETURNING id, created_at`,
			u.Username, u.Email, u.PasswordHash, u.Role, u.Bio, u.Avatar,
		).Scan(&u.ID, &u.CreatedAt)
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
	var u user.User

	err := r.prom.ObserveDB("users.get_by_username", func() error {
		var err error
		u, err = scanUser(r.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	var u user.User

	err := r.prom.ObserveDB("users.get_by_id", func() error {
		var err error
		u, err = scanUser(r.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}
