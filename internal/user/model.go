package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password is too short")
)

// User represents an account that can list items and book other users' items.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	Name         *string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
