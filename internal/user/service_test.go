package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository keyed by id, with a unique email
// constraint like the real table.
type fakeRepo struct {
	byID   map[string]*User
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*User)}
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	r.nextID++
	u.ID = string(rune('a' + r.nextID))
	stored := *u
	r.byID[u.ID] = &stored
	return nil
}

func (r *fakeRepo) Update(_ context.Context, u *User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range r.byID {
		if id != u.ID && existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	stored := *u
	r.byID[u.ID] = &stored
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) List(_ context.Context) ([]*User, error) {
	users := make([]*User, 0, len(r.byID))
	for _, u := range r.byID {
		copied := *u
		users = append(users, &copied)
	}
	return users, nil
}

func (r *fakeRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.byID[id]
	return ok, nil
}

// fakeHasher marks hashes with a prefix instead of running bcrypt.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (fakeHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return ErrInvalidCredentials
	}
	return nil
}

func TestCreateUser(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo, fakeHasher{})

	t.Run("Success", func(t *testing.T) {
		u, err := s.Create(context.Background(), CreateRequest{
			Name:     "  Tester ",
			Email:    " Test@Example.com ",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "Tester", u.Name, "Name should be trimmed")
		assert.Equal(t, "test@example.com", u.Email, "Email should be normalized")
		assert.Equal(t, "hashed:password123", u.PasswordHash, "Password must be stored hashed")
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		_, err := s.Create(context.Background(), CreateRequest{
			Name:     "Other",
			Email:    "test@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("Short Password", func(t *testing.T) {
		_, err := s.Create(context.Background(), CreateRequest{
			Name:     "Shorty",
			Email:    "shorty@example.com",
			Password: "short",
		})
		assert.Error(t, err)
	})

	t.Run("Blank Email", func(t *testing.T) {
		_, err := s.Create(context.Background(), CreateRequest{
			Name:     "NoMail",
			Email:    "   ",
			Password: "password123",
		})
		assert.Error(t, err)
	})
}

func TestUpdateUser(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo, fakeHasher{})

	u, err := s.Create(context.Background(), CreateRequest{
		Name: "Tester", Email: "test@example.com", Password: "password123",
	})
	require.NoError(t, err)

	t.Run("Patch Name Only", func(t *testing.T) {
		name := "Renamed"
		updated, err := s.Update(context.Background(), u.ID, UpdateRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Name)
		assert.Equal(t, "test@example.com", updated.Email, "Absent fields keep their value")
	})

	t.Run("Patch Email Only", func(t *testing.T) {
		email := "New@Example.com"
		updated, err := s.Update(context.Background(), u.ID, UpdateRequest{Email: &email})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", updated.Email)
		assert.Equal(t, "Renamed", updated.Name)
	})

	t.Run("Unknown User", func(t *testing.T) {
		name := "Ghost"
		_, err := s.Update(context.Background(), "missing", UpdateRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLogin(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo, fakeHasher{})

	created, err := s.Create(context.Background(), CreateRequest{
		Name: "Tester", Email: "test@example.com", Password: "password123",
	})
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		u, err := s.Login(context.Background(), "Test@Example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, created.ID, u.ID)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		_, err := s.Login(context.Background(), "test@example.com", "wrongpassword")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		_, err := s.Login(context.Background(), "ghost@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials, "Unknown email must not be distinguishable from a bad password")
	})

	t.Run("Blank Credentials", func(t *testing.T) {
		_, err := s.Login(context.Background(), "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo, fakeHasher{})

	u, err := s.Create(context.Background(), CreateRequest{
		Name: "Tester", Email: "test@example.com", Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), u.ID))

	ok, err := s.Exists(context.Background(), u.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
