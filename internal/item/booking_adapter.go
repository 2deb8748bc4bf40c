package item

import (
	"context"

	"shareit/internal/booking"
)

// BookingReader adapts the item repository to the booking package's
// read-only ItemReader port.
type BookingReader struct {
	repo Repository
}

func NewBookingReader(repo Repository) *BookingReader {
	return &BookingReader{repo: repo}
}

func (a *BookingReader) Get(ctx context.Context, id string) (booking.ItemInfo, error) {
	it, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return booking.ItemInfo{}, err
	}
	return booking.ItemInfo{
		ID:        it.ID,
		OwnerID:   it.OwnerID,
		Available: it.Available,
	}, nil
}

func (a *BookingReader) OwnedBy(ctx context.Context, ownerID string) ([]string, error) {
	return a.repo.OwnedIDs(ctx, ownerID)
}
