package http

import (
	"time"

	"shareit/internal/booking"
	"shareit/internal/item"
)

// ItemTag is the minimal item reference embedded in other responses.
type ItemTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ItemResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	RequestID   *string   `json:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		OwnerID:     it.OwnerID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
		CreatedAt:   it.CreatedAt,
	}
}

// BookingRef is the compact last/next booking view on an owner's item.
type BookingRef struct {
	ID       string    `json:"id"`
	BookerID string    `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Status   string    `json:"status"`
}

func newBookingRef(b *booking.Booking) *BookingRef {
	if b == nil {
		return nil
	}
	return &BookingRef{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
		Status:   string(b.Status),
	}
}

type CommentResponse struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	Created    time.Time `json:"created"`
}

func NewCommentResponse(cm *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         cm.ID,
		AuthorName: cm.AuthorName,
		Text:       cm.Text,
		Created:    cm.Created,
	}
}

type ItemDetailsResponse struct {
	ItemResponse
	LastBooking *BookingRef       `json:"last_booking"`
	NextBooking *BookingRef       `json:"next_booking"`
	Comments    []CommentResponse `json:"comments"`
}

func NewItemDetailsResponse(d *item.Details) ItemDetailsResponse {
	comments := make([]CommentResponse, len(d.Comments))
	for i, cm := range d.Comments {
		comments[i] = NewCommentResponse(cm)
	}
	return ItemDetailsResponse{
		ItemResponse: NewItemResponse(&d.Item),
		LastBooking:  newBookingRef(d.LastBooking),
		NextBooking:  newBookingRef(d.NextBooking),
		Comments:     comments,
	}
}

type CreateItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Available   *bool   `json:"available" binding:"required"`
	RequestID   *string `json:"request_id" binding:"omitempty,uuid"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
