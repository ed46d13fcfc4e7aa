// Package dto defines data transfer objects for the user HTTP API.
package dto

import "time"

// UserRes represents the current user in the API response.
// The password hash is never exposed.
type UserRes struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
