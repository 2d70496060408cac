package store

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/marketpulse/market-pulse-be/internal/database"
	"github.com/marketpulse/market-pulse-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *UserStore {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return NewUserStore(db)
}

func testUser(email string) models.User {
	return models.User{
		ID:           uuid.New().String(),
		Username:     "alice",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
	}
}

func TestInsertAndFindByEmail(t *testing.T) {
	s := newTestStore(t)

	inserted, err := s.Insert(testUser("alice@example.com"))
	require.NoError(t, err)
	assert.False(t, inserted.CreatedAt.IsZero())
	assert.False(t, inserted.UpdatedAt.IsZero())

	found, err := s.FindByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, inserted.ID, found.ID)
	assert.Equal(t, "alice", found.Username)
	assert.False(t, found.IsVerified)
}

func TestFindByEmailNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.FindByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsertDuplicateEmail(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Insert(testUser("alice@example.com"))
	require.NoError(t, err)

	// The unique index, not a pre-check, rejects the second insert.
	_, err = s.Insert(testUser("alice@example.com"))
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)

	user, err := s.Insert(testUser("alice@example.com"))
	require.NoError(t, err)

	user.Username = "alice2"
	user.IsVerified = true
	updated, err := s.Update(user)
	require.NoError(t, err)

	found, err := s.FindByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice2", found.Username)
	assert.True(t, found.IsVerified)
	assert.False(t, updated.UpdatedAt.Before(found.CreatedAt))
}

func TestUpdateMissingUser(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Update(testUser("ghost@example.com"))
	assert.ErrorIs(t, err, ErrNotFound)
}
