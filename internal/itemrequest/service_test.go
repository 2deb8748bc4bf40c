package itemrequest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/item"
	"shareit/internal/pkg/request"
	"shareit/internal/user"
)

type fakeRepo struct {
	byID      map[string]*ItemRequest
	own       []*ItemRequest
	others    []*ItemRequest
	othersPage *request.Page
	nextID    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*ItemRequest)}
}

func (r *fakeRepo) Create(_ context.Context, req *ItemRequest) error {
	r.nextID++
	req.ID = string(rune('a' + r.nextID))
	stored := *req
	r.byID[req.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*ItemRequest, error) {
	req, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (r *fakeRepo) ListByRequester(_ context.Context, _ string) ([]*ItemRequest, error) {
	return r.own, nil
}

func (r *fakeRepo) ListOthers(_ context.Context, _ string, page *request.Page) ([]*ItemRequest, error) {
	r.othersPage = page
	return r.others, nil
}

// fakeItemRepo serves canned answers per request id.
type fakeItemRepo struct {
	byRequest map[string][]*item.Item
}

func (r *fakeItemRepo) Create(_ context.Context, _ *item.Item) error  { return nil }
func (r *fakeItemRepo) Update(_ context.Context, _ *item.Item) error  { return nil }
func (r *fakeItemRepo) GetByID(_ context.Context, _ string) (*item.Item, error) {
	return nil, item.ErrNotFound
}

func (r *fakeItemRepo) ListByOwner(_ context.Context, _ string, _ *request.Page) ([]*item.Item, error) {
	return nil, nil
}

func (r *fakeItemRepo) OwnedIDs(_ context.Context, _ string) ([]string, error) { return nil, nil }

func (r *fakeItemRepo) Search(_ context.Context, _ string, _ *request.Page) ([]*item.Item, error) {
	return nil, nil
}

func (r *fakeItemRepo) ListByRequest(_ context.Context, requestID string) ([]*item.Item, error) {
	return r.byRequest[requestID], nil
}

type fakeUsers map[string]bool

func (f fakeUsers) Create(_ context.Context, _ user.CreateRequest) (*user.User, error) {
	return nil, nil
}

func (f fakeUsers) Update(_ context.Context, _ string, _ user.UpdateRequest) (*user.User, error) {
	return nil, nil
}

func (f fakeUsers) Delete(_ context.Context, _ string) error { return nil }

func (f fakeUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	if !f[id] {
		return nil, user.ErrNotFound
	}
	return &user.User{ID: id}, nil
}

func (f fakeUsers) List(_ context.Context) ([]*user.User, error) { return nil, nil }

func (f fakeUsers) Login(_ context.Context, _, _ string) (*user.User, error) { return nil, nil }

func (f fakeUsers) Exists(_ context.Context, id string) (bool, error) { return f[id], nil }

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepo, items *fakeItemRepo) *service {
	return &service{
		repo:  repo,
		items: items,
		users: fakeUsers{"requester-1": true, "owner-1": true},
		now:   func() time.Time { return testNow },
	}
}

func TestCreateItemRequest(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo, &fakeItemRepo{})

	t.Run("Success", func(t *testing.T) {
		req, err := s.Create(context.Background(), "requester-1", "Need a drill")
		require.NoError(t, err)
		assert.NotEmpty(t, req.ID)
		assert.Equal(t, "Need a drill", req.Description)
		assert.Equal(t, testNow, req.Created)
	})

	t.Run("Unknown Requester", func(t *testing.T) {
		_, err := s.Create(context.Background(), "ghost", "Need a drill")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestGetItemRequest(t *testing.T) {
	repo := newFakeRepo()
	items := &fakeItemRepo{byRequest: map[string][]*item.Item{}}
	s := newTestService(repo, items)

	req, err := s.Create(context.Background(), "requester-1", "Need a drill")
	require.NoError(t, err)
	items.byRequest[req.ID] = []*item.Item{{ID: "item-1", Name: "Drill"}}

	t.Run("Attaches Answering Items", func(t *testing.T) {
		// Any known user may view a request, not just its author.
		d, err := s.GetByID(context.Background(), "owner-1", req.ID)
		require.NoError(t, err)
		require.Len(t, d.Items, 1)
		assert.Equal(t, "item-1", d.Items[0].ID)
	})

	t.Run("Unknown Request", func(t *testing.T) {
		_, err := s.GetByID(context.Background(), "requester-1", "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Unknown Actor", func(t *testing.T) {
		_, err := s.GetByID(context.Background(), "ghost", req.ID)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestListItemRequests(t *testing.T) {
	t.Run("Own Requests With No Answers", func(t *testing.T) {
		repo := newFakeRepo()
		repo.own = []*ItemRequest{{ID: "rq-1", RequesterID: "requester-1"}}
		s := newTestService(repo, &fakeItemRepo{})

		details, err := s.ListOwn(context.Background(), "requester-1")
		require.NoError(t, err)
		require.Len(t, details, 1)
		assert.NotNil(t, details[0].Items, "Answers should serialize as an empty array")
		assert.Empty(t, details[0].Items)
	})

	t.Run("Others Passes Page Through", func(t *testing.T) {
		repo := newFakeRepo()
		s := newTestService(repo, &fakeItemRepo{})

		page := &request.Page{From: 0, Size: 10}
		_, err := s.ListOthers(context.Background(), "requester-1", page)
		require.NoError(t, err)
		assert.Equal(t, page, repo.othersPage)
	})

	t.Run("Others Rejects Invalid Page", func(t *testing.T) {
		repo := newFakeRepo()
		s := newTestService(repo, &fakeItemRepo{})

		_, err := s.ListOthers(context.Background(), "requester-1", &request.Page{From: 0, Size: -5})
		assert.ErrorIs(t, err, request.ErrNonPositiveSize)
	})
}
