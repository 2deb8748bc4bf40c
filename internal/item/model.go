package item

import (
	"net/http"
	"time"

	"shareit/internal/booking"
	"shareit/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.New(apperror.KindNotFound, http.StatusNotFound, "There is no item with such ID")
	ErrNotOwner = apperror.New(apperror.KindForbidden, http.StatusForbidden, "Incorrect item owner ID is specified")
)

// Item is a listing a user offers for rent.
type Item struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Available   bool
	// RequestID links the item to the "wanted item" request it answers, if any.
	RequestID *string
	CreatedAt time.Time
}

// Comment is a review left on an item by a user who has rented it.
type Comment struct {
	ID         string
	ItemID     string
	AuthorID   string
	AuthorName string
	Text       string
	Created    time.Time
}

// Details is the item as served to a viewer: the owner additionally sees the
// item's last and next booking.
type Details struct {
	Item
	LastBooking *booking.Booking
	NextBooking *booking.Booking
	Comments    []*Comment
}
