// Package usecase implements the business logic for the current-user endpoint.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"todo_backend/internal/feature/auth/domain/entity"
	authuc "todo_backend/internal/feature/auth/usecase"
)

// ErrUserNotFound is returned when the authenticated subject no longer exists.
var ErrUserNotFound = errors.New("user not found")

// UserRepository abstracts read access to user records.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// UserUsecase provides business logic for user operations.
type UserUsecase struct {
	repo UserRepository
}

// NewUserUsecase creates a new UserUsecase with the given repository.
func NewUserUsecase(r UserRepository) *UserUsecase {
	return &UserUsecase{repo: r}
}

// GetCurrentUser returns the user identified by the session token subject.
func (u *UserUsecase) GetCurrentUser(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := u.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, authuc.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user %d: %w", userID, err)
	}
	return user, nil
}
