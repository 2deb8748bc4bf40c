package itemrequest

import (
	"context"
	"time"

	"shareit/internal/item"
	"shareit/internal/pkg/request"
	"shareit/internal/user"
)

type Service interface {
	Create(ctx context.Context, requesterID, description string) (*ItemRequest, error)
	ListOwn(ctx context.Context, requesterID string) ([]*Details, error)
	ListOthers(ctx context.Context, requesterID string, page *request.Page) ([]*Details, error)
	GetByID(ctx context.Context, actorID, requestID string) (*Details, error)
}

type service struct {
	repo  Repository
	items item.Repository
	users user.Service

	now func() time.Time
}

func NewService(repo Repository, items item.Repository, users user.Service) Service {
	return &service{
		repo:  repo,
		items: items,
		users: users,
		now:   time.Now,
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

func (s *service) Create(ctx context.Context, requesterID, description string) (*ItemRequest, error) {
	if err := s.checkUserExists(ctx, requesterID); err != nil {
		return nil, err
	}

	req := &ItemRequest{
		RequesterID: requesterID,
		Description: description,
		Created:     s.now(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) ListOwn(ctx context.Context, requesterID string) ([]*Details, error) {
	if err := s.checkUserExists(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

func (s *service) ListOthers(ctx context.Context, requesterID string, page *request.Page) ([]*Details, error) {
	if err := s.checkUserExists(ctx, requesterID); err != nil {
		return nil, err
	}
	if page != nil {
		if err := page.Validate(); err != nil {
			return nil, err
		}
	}

	requests, err := s.repo.ListOthers(ctx, requesterID, page)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

func (s *service) GetByID(ctx context.Context, actorID, requestID string) (*Details, error) {
	if err := s.checkUserExists(ctx, actorID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	details, err := s.attachItems(ctx, []*ItemRequest{req})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

func (s *service) attachItems(ctx context.Context, requests []*ItemRequest) ([]*Details, error) {
	details := make([]*Details, 0, len(requests))
	for _, req := range requests {
		answers, err := s.items.ListByRequest(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		if answers == nil {
			answers = []*item.Item{}
		}
		details = append(details, &Details{ItemRequest: *req, Items: answers})
	}
	return details, nil
}
