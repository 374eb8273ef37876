package user

import (
	"errors"
	"time"
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password"` // never expose hash in JSON
	Role         Role      `json:"role" db:"role"`
	Bio          string    `json:"bio,omitempty" db:"bio"`
	Avatar       string    `json:"avatar,omitempty" db:"avatar"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("username or email already in use")
)

type RegisterRequest struct {
	Username string `json:"username" form:"username" binding:"required,max=50"`
	Email    string `json:"email" form:"email" binding:"required,max=100"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}
