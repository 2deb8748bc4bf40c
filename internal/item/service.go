package item

import (
	"context"
	"sort"
	"strings"
	"time"

	"shareit/internal/booking"
	"shareit/internal/pkg/request"
	"shareit/internal/user"
)

// CreateRequest carries the fields for listing a new item.
type CreateRequest struct {
	Name        string
	Description string
	Available   bool
	RequestID   *string
}

// UpdateRequest carries a partial item update; nil fields keep their value.
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error)
	Update(ctx context.Context, ownerID, itemID string, req UpdateRequest) (*Item, error)
	GetByID(ctx context.Context, actorID, itemID string) (*Details, error)
	// ListByOwner returns the actor's own items; items that have been rented
	// at least once come first, ordered by their last booking's start.
	ListByOwner(ctx context.Context, ownerID string, page *request.Page) ([]*Details, error)
	Search(ctx context.Context, actorID, text string, page *request.Page) ([]*Item, error)
	// AddComment posts a review; gated on the author having a booking of the
	// item whose rental period has begun.
	AddComment(ctx context.Context, authorID, itemID, text string) (*Comment, error)
}

type service struct {
	repo     Repository
	comments CommentRepository
	users    user.Service
	bookings booking.Service

	now func() time.Time
}

func NewService(repo Repository, comments CommentRepository, users user.Service, bookings booking.Service) Service {
	return &service{
		repo:     repo,
		comments: comments,
		users:    users,
		bookings: bookings,
		now:      time.Now,
	}
}

func (s *service) checkUserExists(ctx context.Context, userID string) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return user.ErrNotFound
	}
	return nil
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error) {
	if err := s.checkUserExists(ctx, ownerID); err != nil {
		return nil, err
	}

	it := &Item{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, ownerID, itemID string, req UpdateRequest) (*Item, error) {
	if err := s.checkUserExists(ctx, ownerID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	// Patch semantics: absent fields keep their stored value.
	if req.Name != nil {
		it.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetByID(ctx context.Context, actorID, itemID string) (*Details, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.checkUserExists(ctx, actorID); err != nil {
		return nil, err
	}
	return s.details(ctx, it, actorID)
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, page *request.Page) ([]*Details, error) {
	if err := s.checkUserExists(ctx, ownerID); err != nil {
		return nil, err
	}
	if page != nil {
		if err := page.Validate(); err != nil {
			return nil, err
		}
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}

	details := make([]*Details, 0, len(items))
	for _, it := range items {
		d, err := s.details(ctx, it, ownerID)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}

	// Items that have been rented come first, ordered by their last
	// booking's start; never-rented items keep their relative order at the
	// end.
	sort.SliceStable(details, func(i, j int) bool {
		a, b := details[i].LastBooking, details[j].LastBooking
		switch {
		case a != nil && b != nil:
			return a.Start.Before(b.Start)
		case a != nil:
			return true
		default:
			return false
		}
	})
	return details, nil
}

func (s *service) details(ctx context.Context, it *Item, actorID string) (*Details, error) {
	d := &Details{Item: *it}

	// Last and next booking are the owner's view only.
	if it.OwnerID == actorID {
		last, err := s.bookings.LastForItem(ctx, it.ID)
		if err != nil {
			return nil, err
		}
		next, err := s.bookings.NextForItem(ctx, it.ID)
		if err != nil {
			return nil, err
		}
		d.LastBooking, d.NextBooking = last, next
	}

	comments, err := s.comments.ListByItem(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*Comment{}
	}
	d.Comments = comments
	return d, nil
}

func (s *service) Search(ctx context.Context, actorID, text string, page *request.Page) ([]*Item, error) {
	if err := s.checkUserExists(ctx, actorID); err != nil {
		return nil, err
	}
	if page != nil {
		if err := page.Validate(); err != nil {
			return nil, err
		}
	}

	// A blank search matches nothing.
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}

	items, err := s.repo.Search(ctx, text, page)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Item{}
	}
	return items, nil
}

func (s *service) AddComment(ctx context.Context, authorID, itemID, text string) (*Comment, error) {
	if err := s.checkUserExists(ctx, authorID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	if err := s.bookings.CheckCompleted(ctx, authorID, itemID); err != nil {
		return nil, err
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	cm := &Comment{
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Text:       text,
		Created:    s.now(),
	}
	if err := s.comments.Create(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}
