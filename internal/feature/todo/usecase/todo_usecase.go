// Package usecase はtodoフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todo_backend/internal/feature/todo/domain/entity"
)

var (
	// ErrTodoNotFound はtodoが存在しないか、他のユーザーの所有である場合に返されます。
	ErrTodoNotFound = errors.New("todo not found")

	// ErrNoPermission は他のユーザーのtodo（または存在しないtodo）を更新・削除しようとした場合に返されます。
	ErrNoPermission = errors.New("no permission")

	// ErrTitleRequired はタイトルが空の場合に返されます。
	ErrTitleRequired = errors.New("title should not be empty")
)

// TodoRepository はtodoの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type TodoRepository interface {
	// ListByUser は指定ユーザーのtodoを作成日時の新しい順で返します。
	ListByUser(ctx context.Context, userID uint) ([]entity.Todo, error)
	// FindByID はIDでtodoを取得します。存在しない場合はErrTodoNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Todo, error)
	Create(ctx context.Context, todo *entity.Todo) error
	Update(ctx context.Context, todo *entity.Todo) error
	Delete(ctx context.Context, userID, id uint) error
}

// UpdateInput はPATCH /todo/:id の入力です。Descriptionがnilの場合は変更しません。
type UpdateInput struct {
	Title       string
	Description *string
}

// TodoUsecase はtodoのCRUDと所有者チェックを提供します。
type TodoUsecase struct {
	repo TodoRepository
}

// NewTodoUsecase はTodoUsecaseの新しいインスタンスを生成します。
func NewTodoUsecase(repo TodoRepository) *TodoUsecase {
	return &TodoUsecase{repo: repo}
}

// List はユーザーが所有するtodoの一覧を返します。
func (u *TodoUsecase) List(ctx context.Context, userID uint) ([]entity.Todo, error) {
	todos, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// Get はユーザーが所有するtodoを1件返します。
// 他のユーザーのtodoは存在しないものとして扱います。
func (u *TodoUsecase) Get(ctx context.Context, userID, id uint) (*entity.Todo, error) {
	todo, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !todo.IsOwnedBy(userID) {
		return nil, ErrTodoNotFound
	}
	return todo, nil
}

// Create はユーザーに紐づく新しいtodoを作成します。
func (u *TodoUsecase) Create(ctx context.Context, userID uint, title, description string) (*entity.Todo, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	todo := &entity.Todo{Title: title, Description: description, UserID: userID}
	if err := u.repo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return todo, nil
}

// Update はユーザーが所有するtodoを更新します。
// 存在しない場合と他のユーザーの所有である場合はどちらもErrNoPermissionを返します。
func (u *TodoUsecase) Update(ctx context.Context, userID, id uint, in UpdateInput) (*entity.Todo, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}
	todo, err := u.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	todo.Title = in.Title
	if in.Description != nil {
		todo.Description = *in.Description
	}
	if err := u.repo.Update(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return todo, nil
}

// Delete はユーザーが所有するtodoを削除します。
func (u *TodoUsecase) Delete(ctx context.Context, userID, id uint) error {
	if _, err := u.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func (u *TodoUsecase) owned(ctx context.Context, userID, id uint) (*entity.Todo, error) {
	todo, err := u.repo.FindByID(ctx, id)
	if errors.Is(err, ErrTodoNotFound) {
		return nil, ErrNoPermission
	}
	if err != nil {
		return nil, err
	}
	if !todo.IsOwnedBy(userID) {
		return nil, ErrNoPermission
	}
	return todo, nil
}
