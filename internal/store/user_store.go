package store

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/marketpulse/market-pulse-be/internal/models"
)

var (
	// ErrNotFound is returned when no account matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrEmailExists is returned when an insert collides with the unique
	// email constraint. Uniqueness is enforced by the database, not by a
	// pre-check, so two racing registrations cannot both succeed.
	ErrEmailExists = errors.New("user email already exists")
)

// UserStoreProvider defines the persistence boundary for accounts.
type UserStoreProvider interface {
	FindByEmail(email string) (models.User, error)
	Insert(user models.User) (models.User, error)
	Update(user models.User) (models.User, error)
}

// UserStore persists accounts in SQLite.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByEmail retrieves a single user by their normalized email.
func (s *UserStore) FindByEmail(email string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow(
		"SELECT id, username, email, password_hash, is_verified, created_at, updated_at FROM users WHERE email = ?",
		email)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.IsVerified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// Insert stores a new user. The unique index on email makes the insert the
// authoritative duplicate check; a constraint violation surfaces as
// ErrEmailExists.
func (s *UserStore) Insert(user models.User) (models.User, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	stmt, err := s.db.Prepare(
		"INSERT INTO users(id, username, email, password_hash, is_verified, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Username, user.Email, user.PasswordHash,
		user.IsVerified, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrEmailExists
		}
		return models.User{}, err
	}
	return user, nil
}

// Update persists mutable fields (username, password hash, verification flag)
// and refreshes the updated_at timestamp. Email is immutable.
func (s *UserStore) Update(user models.User) (models.User, error) {
	user.UpdatedAt = time.Now().UTC()

	res, err := s.db.Exec(
		"UPDATE users SET username = ?, password_hash = ?, is_verified = ?, updated_at = ? WHERE id = ?",
		user.Username, user.PasswordHash, user.IsVerified, user.UpdatedAt, user.ID)
	if err != nil {
		return models.User{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.User{}, err
	}
	if affected == 0 {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

// isUniqueViolation detects a SQLite unique-constraint failure. The modernc
// driver reports these as plain errors, so the message is matched.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
