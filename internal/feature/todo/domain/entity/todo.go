// Package entity defines the todo domain model.
package entity

import "time"

// Todo is a task owned by exactly one user.
type Todo struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      uint      `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsOwnedBy reports whether the todo belongs to the given user.
func (t *Todo) IsOwnedBy(userID uint) bool {
	return t != nil && t.UserID == userID
}
