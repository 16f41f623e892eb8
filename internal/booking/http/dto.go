package http

import (
	"time"

	"github.com/shareloop/rental-backend/internal/booking"
	itemHttp "github.com/shareloop/rental-backend/internal/item/http"
)

type CreateBookingRequest struct {
	ItemID string    `json:"item_id" binding:"required,uuid"`
	Start  time.Time `json:"start_time" binding:"required"`
	End    time.Time `json:"end_time" binding:"required"`
}

type BookingResponse struct {
	ID        string           `json:"id"`
	Item      itemHttp.ItemTag `json:"item"`
	OwnerID   string           `json:"owner_id"`
	BookerID  string           `json:"booker_id"`
	Start     time.Time        `json:"start_time"`
	End       time.Time        `json:"end_time"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Item:      itemHttp.ItemTag{ID: b.ItemID, Name: b.ItemName},
		OwnerID:   b.OwnerID,
		BookerID:  b.BookerID,
		Start:     b.Start,
		End:       b.End,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
