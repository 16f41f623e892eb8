package http

import (
	"time"

	"github.com/shareloop/rental-backend/internal/item"
)

type AddItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	// Pointer so that a missing availability flag fails binding instead of
	// silently defaulting to false.
	Available *bool `json:"available" binding:"required"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type ItemResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CommentResponse struct {
	ID         string    `json:"id"`
	ItemID     string    `json:"item_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName *string   `json:"author_name,omitempty"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

type ItemDetailResponse struct {
	ItemResponse
	Comments []CommentResponse `json:"comments"`
}

// ItemTag holds minimal item info for embedding in other responses.
type ItemTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		OwnerID:     it.OwnerID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.IsAvailable,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func NewCommentResponse(c *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		ItemID:     c.ItemID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Text:       c.Text,
		CreatedAt:  c.CreatedAt,
	}
}

func NewItemDetailResponse(it *item.Item, comments []*item.Comment) ItemDetailResponse {
	cs := make([]CommentResponse, len(comments))
	for i, c := range comments {
		cs[i] = NewCommentResponse(c)
	}
	return ItemDetailResponse{
		ItemResponse: NewItemResponse(it),
		Comments:     cs,
	}
}
