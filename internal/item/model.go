package item

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("item not found")
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrEmptyComment = errors.New("comment text cannot be empty")
	ErrNotOwner     = errors.New("only the owner may modify an item")
)

// Item represents a listed thing that other users can book.
type Item struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Comment is a remark left on an item by a user.
type Comment struct {
	ID         string
	ItemID     string
	AuthorID   string
	AuthorName *string
	Text       string
	CreatedAt  time.Time
}
