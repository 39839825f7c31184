package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/storage"
)

func newTestRepos(t *testing.T) (storage.UserRepository, storage.DocumentRepository) {
	t.Helper()
	userRepo, docRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		docRepo.Close()
		userRepo.Close()
		backend.Close()
	})
	return userRepo, docRepo
}

func testUser(email string) *core.User {
	return &core.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}
}

func TestAddUser(t *testing.T) {
	users, _ := newTestRepos(t)
	ctx := context.Background()

	added, err := users.AddUser(ctx, testUser("ana@example.com"))
	require.NoError(t, err)
	assert.NotZero(t, added.Id)
	assert.False(t, added.CreatedAt.IsZero())
	assert.False(t, added.UpdatedAt.IsZero())
}

func TestAddUser_DuplicateEmail(t *testing.T) {
	users, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := users.AddUser(ctx, testUser("ana@example.com"))
	require.NoError(t, err)

	_, err = users.AddUser(ctx, testUser("ana@example.com"))
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestAddUser_Invalid(t *testing.T) {
	users, _ := newTestRepos(t)
	ctx := context.Background()

	u := testUser("ana@example.com")
	u.PasswordHash = ""
	_, err := users.AddUser(ctx, u)
	assert.ErrorIs(t, err, core.ErrInvalidUser)
}

func TestGetUser(t *testing.T) {
	users, _ := newTestRepos(t)
	ctx := context.Background()

	added, err := users.AddUser(ctx, testUser("budi@example.com"))
	require.NoError(t, err)

	got, err := users.GetUser(ctx, added.Id)
	require.NoError(t, err)
	assert.Equal(t, added.Id, got.Id)
	assert.Equal(t, "budi@example.com", got.Email)
	assert.Equal(t, added.PasswordHash, got.PasswordHash)
}

func TestGetUser_NotFound(t *testing.T) {
	users, _ := newTestRepos(t)

	_, err := users.GetUser(context.Background(), core.ID(999))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFindUserByEmail(t *testing.T) {
	users, _ := newTestRepos(t)
	ctx := context.Background()

	added, err := users.AddUser(ctx, testUser("citra@example.com"))
	require.NoError(t, err)

	t.Run("existing email", func(t *testing.T) {
		got, err := users.FindUserByEmail(ctx, "citra@example.com")
		require.NoError(t, err)
		assert.Equal(t, added.Id, got.Id)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := users.FindUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestAddUser_DistinctIDs(t *testing.T) {
	users, _ := newTestRepos(t)
	ctx := context.Background()

	first, err := users.AddUser(ctx, testUser("one@example.com"))
	require.NoError(t, err)
	second, err := users.AddUser(ctx, testUser("two@example.com"))
	require.NoError(t, err)

	assert.NotEqual(t, first.Id, second.Id)
}
