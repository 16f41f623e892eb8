package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shareloop/rental-backend/internal/auth"
	"github.com/shareloop/rental-backend/internal/item"
	"github.com/shareloop/rental-backend/internal/pkg/request"
	"github.com/shareloop/rental-backend/internal/pkg/response"
)

type Handler struct {
	service item.Service
}

func NewHandler(service item.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Add(c *gin.Context) {
	var body AddItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	it, err := h.service.Add(c.Request.Context(), item.AddRequest{
		OwnerID:     auth.GetUserID(c),
		Name:        body.Name,
		Description: body.Description,
		IsAvailable: *body.Available,
	})
	if err != nil {
		if errors.Is(err, item.ErrEmptyName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item"})
		return
	}

	c.JSON(http.StatusCreated, NewItemResponse(it))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var body UpdateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	it, err := h.service.Update(c.Request.Context(), uri.ID, item.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		IsAvailable: body.Available,
	}, auth.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, item.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, item.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, item.ErrEmptyName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update item"})
		}
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(it))
}

// Get returns an item together with its comments.
func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	ctx := c.Request.Context()

	it, err := h.service.GetByID(ctx, uri.ID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get item"})
		return
	}

	comments, err := h.service.ListComments(ctx, uri.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list comments"})
		return
	}

	c.JSON(http.StatusOK, NewItemDetailResponse(it, comments))
}

// ListMine returns all items owned by the authenticated user.
func (h *Handler) ListMine(c *gin.Context) {
	items, err := h.service.ListByOwner(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list items"})
		return
	}

	resp := make([]ItemResponse, len(items))
	for i, it := range items {
		resp[i] = NewItemResponse(it)
	}
	c.JSON(http.StatusOK, response.List(resp))
}

// Search returns available items matching the text query.
func (h *Handler) Search(c *gin.Context) {
	items, err := h.service.SearchAvailable(c.Request.Context(), c.Query("text"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search items"})
		return
	}

	resp := make([]ItemResponse, len(items))
	for i, it := range items {
		resp[i] = NewItemResponse(it)
	}
	c.JSON(http.StatusOK, response.List(resp))
}

func (h *Handler) AddComment(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var body AddCommentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), uri.ID, auth.GetUserID(c), body.Text)
	if err != nil {
		switch {
		case errors.Is(err, item.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, item.ErrEmptyComment):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add comment"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewCommentResponse(comment))
}
