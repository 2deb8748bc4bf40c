package booking

import (
	"context"
	"time"

	"shareit/internal/pkg/request"
)

// CreateRequest carries the fields for requesting a new booking.
type CreateRequest struct {
	BookerID string
	ItemID   string
	Start    time.Time
	End      time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	// ChangeStatus applies the owner's approve/reject decision.
	ChangeStatus(ctx context.Context, ownerID, bookingID string, approved bool) (*Booking, error)
	// GetByID returns one booking, visible only to its booker or the item's owner.
	GetByID(ctx context.Context, actorID, bookingID string) (*Booking, error)
	ListByBooker(ctx context.Context, bookerID, state string, page *request.Page) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID, state string, page *request.Page) ([]*Booking, error)

	// CheckCompleted is the review gate: it fails unless the user has a
	// booking of the item whose rental period has already begun.
	CheckCompleted(ctx context.Context, userID, itemID string) error

	// LastForItem and NextForItem feed the owner's item views.
	LastForItem(ctx context.Context, itemID string) (*Booking, error)
	NextForItem(ctx context.Context, itemID string) (*Booking, error)
}

type service struct {
	repo  Repository
	users UserReader
	items ItemReader

	now func() time.Time
}

func NewService(repo Repository, users UserReader, items ItemReader) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		now:   time.Now,
	}
}

// validateTimeRange checks a proposed rental period. The checks run in a
// fixed order and the first violation wins, so overlapping violations always
// report the same reason.
func validateTimeRange(start, end, now time.Time) error {
	if end.Before(now) {
		return ErrEndInPast
	}
	if end.Before(start) {
		return ErrEndBeforeStart
	}
	if start.Before(now) {
		return ErrStartInPast
	}
	return nil
}

func (s *service) checkUserExists(ctx context.Context, userID string) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if err := s.checkUserExists(ctx, req.BookerID); err != nil {
		return nil, err
	}

	item, err := s.items.Get(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	// The guards run owner first: self-booking is a conflict regardless of
	// availability or time validity.
	if item.OwnerID == req.BookerID {
		return nil, ErrOwnBooking
	}
	if !item.Available {
		return nil, ErrItemUnavailable
	}

	if err := validateTimeRange(req.Start, req.End, s.now()); err != nil {
		return nil, err
	}

	b := &Booking{
		Start:    req.Start,
		End:      req.End,
		ItemID:   req.ItemID,
		BookerID: req.BookerID,
		Status:   StatusWaiting,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// Re-read to pick up the joined item and booker names.
	return s.repo.GetByID(ctx, b.ID)
}

func (s *service) ChangeStatus(ctx context.Context, ownerID, bookingID string, approved bool) (*Booking, error) {
	if err := s.checkUserExists(ctx, ownerID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.Get(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, ErrNotItemOwner
	}

	to := StatusRejected
	if approved {
		to = StatusApproved
	}
	// The guard blocks only restating the stored value, so a rejected
	// booking may still be approved later. Checked here before mutating,
	// and enforced again by the conditional update underneath.
	if b.Status == to {
		return nil, ErrSameStatus
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, to); err != nil {
		return nil, err
	}

	b.Status = to
	return b, nil
}

func (s *service) GetByID(ctx context.Context, actorID, bookingID string) (*Booking, error) {
	if err := s.checkUserExists(ctx, actorID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.Get(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}
	if b.BookerID != actorID && item.OwnerID != actorID {
		return nil, ErrNotOwnerOrBooker
	}
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, bookerID, state string, page *request.Page) ([]*Booking, error) {
	q, err := s.buildQuery(ctx, bookerID, state, page)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListByBooker(ctx, bookerID, q)
	if err != nil {
		return nil, err
	}
	return nonNil(bookings), nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID, state string, page *request.Page) ([]*Booking, error) {
	q, err := s.buildQuery(ctx, ownerID, state, page)
	if err != nil {
		return nil, err
	}

	// The owner's candidate set is every booking of an item they own.
	itemIDs, err := s.items.OwnedBy(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(itemIDs) == 0 {
		return []*Booking{}, nil
	}

	bookings, err := s.repo.ListByItems(ctx, itemIDs, q)
	if err != nil {
		return nil, err
	}
	return nonNil(bookings), nil
}

func (s *service) buildQuery(ctx context.Context, actorID, state string, page *request.Page) (Query, error) {
	if err := s.checkUserExists(ctx, actorID); err != nil {
		return Query{}, err
	}

	st, err := ParseState(state)
	if err != nil {
		return Query{}, err
	}

	if page != nil {
		if err := page.Validate(); err != nil {
			return Query{}, err
		}
	}

	return Query{State: st, Now: s.now(), Page: page}, nil
}

func (s *service) CheckCompleted(ctx context.Context, userID, itemID string) error {
	bookings, err := s.repo.ListByItemAndBooker(ctx, itemID, userID)
	if err != nil {
		return err
	}

	// Two independent checks over the same candidate set; the started-check
	// runs first, so a user with no bookings at all reports "not started".
	now := s.now()
	started := false
	booked := false
	for _, b := range bookings {
		if b.Start.Before(now) {
			started = true
		}
		if b.BookerID == userID {
			booked = true
		}
	}
	if !started {
		return ErrBookingNotStarted
	}
	if !booked {
		return ErrNotItemBooker
	}
	return nil
}

func (s *service) LastForItem(ctx context.Context, itemID string) (*Booking, error) {
	return s.repo.LastForItem(ctx, itemID, s.now())
}

func (s *service) NextForItem(ctx context.Context, itemID string) (*Booking, error) {
	return s.repo.NextForItem(ctx, itemID, s.now())
}

// nonNil guarantees list responses serialize as an empty array, never null.
func nonNil(bookings []*Booking) []*Booking {
	if bookings == nil {
		return []*Booking{}
	}
	return bookings
}
