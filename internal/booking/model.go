package booking

import (
	"context"
	"net/http"
	"time"

	"shareit/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(apperror.KindNotFound, http.StatusNotFound, "There is no booking with such ID")
	ErrUserNotFound = apperror.New(apperror.KindNotFound, http.StatusNotFound, "There is no user with such ID")

	ErrEndInPast      = apperror.New(apperror.KindInvalidTimeRange, http.StatusBadRequest, "The end of the booking cannot be in the past")
	ErrEndBeforeStart = apperror.New(apperror.KindInvalidTimeRange, http.StatusBadRequest, "The end of the booking cannot be earlier than the beginning")
	ErrStartInPast    = apperror.New(apperror.KindInvalidTimeRange, http.StatusBadRequest, "The beginning of the booking cannot be in the past")

	ErrOwnBooking      = apperror.New(apperror.KindConflict, http.StatusConflict, "This user is the owner of the item")
	ErrItemUnavailable = apperror.New(apperror.KindInvalidState, http.StatusBadRequest, "The item is not available for booking")
	ErrSameStatus      = apperror.New(apperror.KindConflict, http.StatusConflict, "It is not possible to update the booking status to the same")

	ErrNotItemOwner     = apperror.New(apperror.KindForbidden, http.StatusForbidden, "Incorrect item owner ID is specified")
	ErrNotOwnerOrBooker = apperror.New(apperror.KindForbidden, http.StatusForbidden, "Incorrect item owner or booker ID is specified")

	ErrBookingNotStarted = apperror.New(apperror.KindInvalidState, http.StatusBadRequest, "The booking of the item has not yet started")
	ErrNotItemBooker     = apperror.New(apperror.KindInvalidState, http.StatusBadRequest, "Incorrect item booker ID is specified")
)

// Status is the booking lifecycle state. A booking starts WAITING and is
// moved by the item's owner; the only blocked transition is restating the
// current value.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Booking is the central entity: a date range requested by a booker for an
// item. ItemName and BookerName are joined in for responses; start, end,
// item and booker are fixed at creation.
type Booking struct {
	ID         string
	Start      time.Time
	End        time.Time
	ItemID     string
	ItemName   string
	BookerID   string
	BookerName string
	Status     Status
	CreatedAt  time.Time
}

// ItemInfo is the projection of an item the booking rules need.
type ItemInfo struct {
	ID        string
	OwnerID   string
	Available bool
}

// ItemReader is the narrow read-only port onto the item component. Keeping
// it here breaks the item<->booking dependency cycle: the item package
// implements it, the booking package never imports the item package.
type ItemReader interface {
	// Get returns the item projection, or the item component's not-found error.
	Get(ctx context.Context, id string) (ItemInfo, error)
	// OwnedBy returns the ids of all items owned by the given user.
	OwnedBy(ctx context.Context, ownerID string) ([]string, error)
}

// UserReader reports whether a user account exists.
type UserReader interface {
	Exists(ctx context.Context, id string) (bool, error)
}
