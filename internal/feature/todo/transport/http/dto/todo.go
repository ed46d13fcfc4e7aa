// Package dto defines data transfer objects for the todo HTTP API.
package dto

import (
	"time"

	"todo_backend/internal/feature/todo/domain/entity"
)

// CreateTodoReq is the request body for POST /todo.
type CreateTodoReq struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
}

// UpdateTodoReq is the request body for PATCH /todo/:id.
// Description is left unchanged when omitted.
type UpdateTodoReq struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description"`
}

// TodoRes represents a todo in the API response.
type TodoRes struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      uint      `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromEntity converts a domain todo into its response shape.
func FromEntity(t entity.Todo) TodoRes {
	return TodoRes{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
