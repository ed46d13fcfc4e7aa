// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// Users are created only through signup and are never mutated afterwards.
type User struct {
	// ID is the unique identifier assigned by the store on creation.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It is unique across all users (case-sensitive as persisted).
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the salted bcrypt hash of the user's password.
	// The plaintext password is never stored.
	Password string `gorm:"column:password_hash;size:255;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
