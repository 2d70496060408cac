package models

import "time"

// User represents a user account in the system. The email is normalized
// (trimmed, lower-cased) before it ever reaches this struct and is the
// unique lookup key; it does not change after creation.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	IsVerified   bool      `json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserUpdate is a partial profile update. Nil means "leave unchanged", so an
// explicitly empty value is distinguishable from an absent one. Password is
// the raw password; it is hashed before it is stored.
type UserUpdate struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}
