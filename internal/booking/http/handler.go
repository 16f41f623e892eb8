package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shareloop/rental-backend/internal/auth"
	"github.com/shareloop/rental-backend/internal/booking"
	"github.com/shareloop/rental-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		RequesterID: auth.GetUserID(c),
		ItemID:      body.ItemID,
		Start:       body.Start,
		End:         body.End,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// SetApproval lets the item owner approve or reject a booking.
// The decision comes from the required query parameter approved=true|false.
func (h *Handler) SetApproval(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter approved must be true or false"})
		return
	}

	b, err := h.service.SetApproval(c.Request.Context(), auth.GetUserID(c), id, approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), auth.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// ListMine returns the authenticated user's bookings as a booker.
func (h *Handler) ListMine(c *gin.Context) {
	h.list(c, h.service.ListByBooker)
}

// ListOwned returns bookings on the authenticated user's items.
func (h *Handler) ListOwned(c *gin.Context) {
	h.list(c, h.service.ListByOwner)
}

func (h *Handler) list(c *gin.Context, query func(ctx context.Context, userID, state string) ([]*booking.Booking, error)) {
	state := c.DefaultQuery("state", "ALL")

	bookings, err := query(c.Request.Context(), auth.GetUserID(c), state)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.List(items))
}
