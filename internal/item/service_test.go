package item

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/booking"
	"shareit/internal/pkg/request"
	"shareit/internal/user"
)

type fakeRepo struct {
	byID    map[string]*Item
	byOwner []*Item
	search  []*Item

	searchCalls int
	nextID      int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*Item)}
}

func (r *fakeRepo) Create(_ context.Context, it *Item) error {
	r.nextID++
	it.ID = string(rune('a' + r.nextID))
	stored := *it
	r.byID[it.ID] = &stored
	return nil
}

func (r *fakeRepo) Update(_ context.Context, it *Item) error {
	if _, ok := r.byID[it.ID]; !ok {
		return ErrNotFound
	}
	stored := *it
	r.byID[it.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Item, error) {
	it, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *it
	return &copied, nil
}

func (r *fakeRepo) ListByOwner(_ context.Context, _ string, _ *request.Page) ([]*Item, error) {
	return r.byOwner, nil
}

func (r *fakeRepo) OwnedIDs(_ context.Context, ownerID string) ([]string, error) {
	var ids []string
	for id, it := range r.byID {
		if it.OwnerID == ownerID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *fakeRepo) Search(_ context.Context, _ string, _ *request.Page) ([]*Item, error) {
	r.searchCalls++
	return r.search, nil
}

func (r *fakeRepo) ListByRequest(_ context.Context, _ string) ([]*Item, error) {
	return nil, nil
}

type fakeCommentRepo struct {
	created []*Comment
	byItem  []*Comment
}

func (r *fakeCommentRepo) Create(_ context.Context, cm *Comment) error {
	cm.ID = "cm-1"
	r.created = append(r.created, cm)
	return nil
}

func (r *fakeCommentRepo) ListByItem(_ context.Context, _ string) ([]*Comment, error) {
	return r.byItem, nil
}

// fakeUserService backs the user port with a fixed account set.
type fakeUserService struct {
	users map[string]*user.User
}

func (f *fakeUserService) Create(_ context.Context, _ user.CreateRequest) (*user.User, error) {
	return nil, nil
}

func (f *fakeUserService) Update(_ context.Context, _ string, _ user.UpdateRequest) (*user.User, error) {
	return nil, nil
}

func (f *fakeUserService) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeUserService) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserService) List(_ context.Context) ([]*user.User, error) { return nil, nil }

func (f *fakeUserService) Login(_ context.Context, _, _ string) (*user.User, error) {
	return nil, nil
}

func (f *fakeUserService) Exists(_ context.Context, id string) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

// fakeBookingService controls the review gate and the per-item edge bookings.
type fakeBookingService struct {
	completedErr error
	last, next   map[string]*booking.Booking
}

func (f *fakeBookingService) Create(_ context.Context, _ booking.CreateRequest) (*booking.Booking, error) {
	return nil, nil
}

func (f *fakeBookingService) ChangeStatus(_ context.Context, _, _ string, _ bool) (*booking.Booking, error) {
	return nil, nil
}

func (f *fakeBookingService) GetByID(_ context.Context, _, _ string) (*booking.Booking, error) {
	return nil, nil
}

func (f *fakeBookingService) ListByBooker(_ context.Context, _, _ string, _ *request.Page) ([]*booking.Booking, error) {
	return nil, nil
}

func (f *fakeBookingService) ListByOwner(_ context.Context, _, _ string, _ *request.Page) ([]*booking.Booking, error) {
	return nil, nil
}

func (f *fakeBookingService) CheckCompleted(_ context.Context, _, _ string) error {
	return f.completedErr
}

func (f *fakeBookingService) LastForItem(_ context.Context, itemID string) (*booking.Booking, error) {
	return f.last[itemID], nil
}

func (f *fakeBookingService) NextForItem(_ context.Context, itemID string) (*booking.Booking, error) {
	return f.next[itemID], nil
}

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepo, comments *fakeCommentRepo, users *fakeUserService, bookings *fakeBookingService) *service {
	return &service{
		repo:     repo,
		comments: comments,
		users:    users,
		bookings: bookings,
		now:      func() time.Time { return testNow },
	}
}

func defaultFixture() (*fakeRepo, *fakeCommentRepo, *fakeUserService, *fakeBookingService) {
	repo := newFakeRepo()
	comments := &fakeCommentRepo{}
	users := &fakeUserService{users: map[string]*user.User{
		"owner-1":  {ID: "owner-1", Name: "Owner"},
		"booker-1": {ID: "booker-1", Name: "Booker"},
	}}
	bookings := &fakeBookingService{
		last: make(map[string]*booking.Booking),
		next: make(map[string]*booking.Booking),
	}
	return repo, comments, users, bookings
}

func TestCreateItem(t *testing.T) {
	repo, comments, users, bookings := defaultFixture()
	s := newTestService(repo, comments, users, bookings)

	t.Run("Success", func(t *testing.T) {
		it, err := s.Create(context.Background(), "owner-1", CreateRequest{
			Name: "  Drill ", Description: "Cordless drill", Available: true,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, it.ID)
		assert.Equal(t, "Drill", it.Name, "Name should be trimmed")
		assert.Equal(t, "owner-1", it.OwnerID)
	})

	t.Run("Unknown Owner", func(t *testing.T) {
		_, err := s.Create(context.Background(), "ghost", CreateRequest{Name: "Drill"})
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestUpdateItem(t *testing.T) {
	seed := func() (*service, string) {
		repo, comments, users, bookings := defaultFixture()
		s := newTestService(repo, comments, users, bookings)
		it, err := s.Create(context.Background(), "owner-1", CreateRequest{
			Name: "Drill", Description: "Cordless drill", Available: true,
		})
		require.NoError(t, err)
		return s, it.ID
	}

	t.Run("Patch Availability Only", func(t *testing.T) {
		s, id := seed()
		available := false
		it, err := s.Update(context.Background(), "owner-1", id, UpdateRequest{Available: &available})
		require.NoError(t, err)
		assert.False(t, it.Available)
		assert.Equal(t, "Drill", it.Name, "Absent fields keep their value")
		assert.Equal(t, "Cordless drill", it.Description)
	})

	t.Run("Not The Owner", func(t *testing.T) {
		s, id := seed()
		name := "Stolen"
		_, err := s.Update(context.Background(), "booker-1", id, UpdateRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("Unknown Item", func(t *testing.T) {
		s, _ := seed()
		name := "Ghost"
		_, err := s.Update(context.Background(), "owner-1", "missing", UpdateRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetItemByID(t *testing.T) {
	repo, comments, users, bookings := defaultFixture()
	s := newTestService(repo, comments, users, bookings)

	it, err := s.Create(context.Background(), "owner-1", CreateRequest{Name: "Drill", Available: true})
	require.NoError(t, err)

	bookings.last[it.ID] = &booking.Booking{ID: "bk-last"}
	bookings.next[it.ID] = &booking.Booking{ID: "bk-next"}

	t.Run("Owner Sees Bookings", func(t *testing.T) {
		d, err := s.GetByID(context.Background(), "owner-1", it.ID)
		require.NoError(t, err)
		require.NotNil(t, d.LastBooking)
		assert.Equal(t, "bk-last", d.LastBooking.ID)
		require.NotNil(t, d.NextBooking)
		assert.Equal(t, "bk-next", d.NextBooking.ID)
	})

	t.Run("Others Do Not See Bookings", func(t *testing.T) {
		d, err := s.GetByID(context.Background(), "booker-1", it.ID)
		require.NoError(t, err)
		assert.Nil(t, d.LastBooking)
		assert.Nil(t, d.NextBooking)
	})

	t.Run("Comments Never Nil", func(t *testing.T) {
		d, err := s.GetByID(context.Background(), "booker-1", it.ID)
		require.NoError(t, err)
		assert.NotNil(t, d.Comments)
		assert.Empty(t, d.Comments)
	})
}

func TestListItemsByOwner(t *testing.T) {
	repo, comments, users, bookings := defaultFixture()
	s := newTestService(repo, comments, users, bookings)

	// Three items: "b" rented longest ago, "c" rented later, "a" never rented.
	repo.byOwner = []*Item{
		{ID: "a", OwnerID: "owner-1", Name: "Never rented"},
		{ID: "c", OwnerID: "owner-1", Name: "Rented recently"},
		{ID: "b", OwnerID: "owner-1", Name: "Rented long ago"},
	}
	bookings.last["b"] = &booking.Booking{ID: "bk-old", Start: testNow.Add(-48 * time.Hour)}
	bookings.last["c"] = &booking.Booking{ID: "bk-new", Start: testNow.Add(-2 * time.Hour)}

	details, err := s.ListByOwner(context.Background(), "owner-1", nil)
	require.NoError(t, err)
	require.Len(t, details, 3)
	assert.Equal(t, "b", details[0].ID, "Earliest last booking comes first")
	assert.Equal(t, "c", details[1].ID)
	assert.Equal(t, "a", details[2].ID, "Never-rented items go last")
}

func TestSearchItems(t *testing.T) {
	t.Run("Blank Text Matches Nothing", func(t *testing.T) {
		repo, comments, users, bookings := defaultFixture()
		s := newTestService(repo, comments, users, bookings)

		items, err := s.Search(context.Background(), "booker-1", "   ", nil)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		assert.Zero(t, repo.searchCalls, "Repository should not be queried for blank text")
	})

	t.Run("Empty Result Is Not Nil", func(t *testing.T) {
		repo, comments, users, bookings := defaultFixture()
		s := newTestService(repo, comments, users, bookings)

		items, err := s.Search(context.Background(), "booker-1", "drill", nil)
		require.NoError(t, err)
		assert.NotNil(t, items)
	})

	t.Run("Invalid Page", func(t *testing.T) {
		repo, comments, users, bookings := defaultFixture()
		s := newTestService(repo, comments, users, bookings)

		_, err := s.Search(context.Background(), "booker-1", "drill", &request.Page{From: -1, Size: 10})
		assert.ErrorIs(t, err, request.ErrNegativeFrom)
	})
}

func TestAddComment(t *testing.T) {
	seed := func() (*service, *fakeBookingService, string) {
		repo, comments, users, bookings := defaultFixture()
		s := newTestService(repo, comments, users, bookings)
		it, err := s.Create(context.Background(), "owner-1", CreateRequest{Name: "Drill", Available: true})
		require.NoError(t, err)
		return s, bookings, it.ID
	}

	t.Run("Success", func(t *testing.T) {
		s, _, id := seed()
		cm, err := s.AddComment(context.Background(), "booker-1", id, "Great drill")
		require.NoError(t, err)
		assert.Equal(t, "Booker", cm.AuthorName, "Author name should be resolved")
		assert.Equal(t, testNow, cm.Created)
		assert.Equal(t, "Great drill", cm.Text)
	})

	t.Run("Rental Not Started", func(t *testing.T) {
		s, bookings, id := seed()
		bookings.completedErr = booking.ErrBookingNotStarted

		_, err := s.AddComment(context.Background(), "booker-1", id, "Great drill")
		assert.ErrorIs(t, err, booking.ErrBookingNotStarted)
	})

	t.Run("Unknown Item", func(t *testing.T) {
		s, _, _ := seed()
		_, err := s.AddComment(context.Background(), "booker-1", "missing", "Great drill")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Unknown Author", func(t *testing.T) {
		s, _, id := seed()
		_, err := s.AddComment(context.Background(), "ghost", id, "Great drill")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}
