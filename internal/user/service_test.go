package user

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	byID    map[string]*User
	byEmail map[string]*User
	seq     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now()
	dup := *u
	r.byID[u.ID] = &dup
	r.byEmail[u.Email] = &dup
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	dup := *u
	return &dup, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	dup := *u
	return &dup, nil
}

func (r *fakeRepo) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

// fakeHasher prefixes instead of hashing so tests stay fast.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (fakeHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, fakeHasher{}), repo
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "  Alice@Example.COM ", "supersecret", "  Alice  ")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "hashed:supersecret", u.PasswordHash)
	require.NotNil(t, u.Name)
	assert.Equal(t, "Alice", *u.Name)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice@example.com", "supersecret", "")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("blank email", func(t *testing.T) {
		_, err := svc.Register(ctx, "   ", "supersecret", "")
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.Register(ctx, "bob@example.com", "short", "")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("blank name stays nil", func(t *testing.T) {
		u, err := svc.Register(ctx, "carol@example.com", "supersecret", "   ")
		require.NoError(t, err)
		assert.Nil(t, u.Name)
	})
}

func TestLogin(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice@example.com", "supersecret", "Alice")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		u, err := svc.Login(ctx, "Alice@Example.com", "supersecret")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)

		stored, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "supersecret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("blank credentials", func(t *testing.T) {
		_, err := svc.Login(ctx, "", "supersecret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Login(ctx, "alice@example.com", "  ")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestGetByID(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice@example.com", "supersecret", "Alice")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
