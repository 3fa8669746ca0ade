// Package domain
package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserNotFound       = notFound("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID int64) (*User, error)
	Create(ctx context.Context, user *User) error
	Delete(ctx context.Context, userID int64) error
}
