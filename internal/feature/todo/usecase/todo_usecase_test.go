package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo_backend/internal/feature/todo/domain/entity"
)

// mockTodoRepository はTodoRepositoryインターフェースのモック実装です。
type mockTodoRepository struct {
	ListByUserFunc func(ctx context.Context, userID uint) ([]entity.Todo, error)
	FindByIDFunc   func(ctx context.Context, id uint) (*entity.Todo, error)
	CreateFunc     func(ctx context.Context, todo *entity.Todo) error
	UpdateFunc     func(ctx context.Context, todo *entity.Todo) error
	DeleteFunc     func(ctx context.Context, userID, id uint) error
}

func (m *mockTodoRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Todo, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockTodoRepository) FindByID(ctx context.Context, id uint) (*entity.Todo, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrTodoNotFound
}

func (m *mockTodoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, todo)
	}
	todo.ID = 1
	return nil
}

func (m *mockTodoRepository) Update(ctx context.Context, todo *entity.Todo) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, todo)
	}
	return nil
}

func (m *mockTodoRepository) Delete(ctx context.Context, userID, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

// ownedBy はuser 1 が所有するtodo 10 のみを返すFindByIDです。
func ownedBy(ctx context.Context, id uint) (*entity.Todo, error) {
	if id == 10 {
		return &entity.Todo{ID: 10, Title: "buy milk", Description: "2L", UserID: 1}, nil
	}
	return nil, ErrTodoNotFound
}

func TestTodoUsecase_List(t *testing.T) {
	t.Parallel()

	repo := &mockTodoRepository{ListByUserFunc: func(ctx context.Context, userID uint) ([]entity.Todo, error) {
		assert.Equal(t, uint(1), userID)
		return []entity.Todo{{ID: 2, UserID: 1}, {ID: 1, UserID: 1}}, nil
	}}

	todos, err := NewTodoUsecase(repo).List(context.Background(), 1)

	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestTodoUsecase_List_Error(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("db down")
	repo := &mockTodoRepository{ListByUserFunc: func(ctx context.Context, userID uint) ([]entity.Todo, error) {
		return nil, dbErr
	}}

	_, err := NewTodoUsecase(repo).List(context.Background(), 1)

	assert.ErrorIs(t, err, dbErr)
}

func TestTodoUsecase_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		userID      uint
		id          uint
		expectedErr error
	}{
		{"owner", 1, 10, nil},
		{"other user's todo is hidden", 2, 10, ErrTodoNotFound},
		{"missing todo", 1, 99, ErrTodoNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			todo, err := NewTodoUsecase(&mockTodoRepository{FindByIDFunc: ownedBy}).Get(context.Background(), tt.userID, tt.id)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, todo)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, todo.ID)
		})
	}
}

func TestTodoUsecase_Create(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		todo, err := NewTodoUsecase(&mockTodoRepository{}).Create(context.Background(), 1, "buy milk", "")

		require.NoError(t, err)
		assert.Equal(t, uint(1), todo.ID)
		assert.Equal(t, uint(1), todo.UserID)
		assert.Equal(t, "buy milk", todo.Title)
	})

	t.Run("blank title", func(t *testing.T) {
		t.Parallel()

		called := false
		repo := &mockTodoRepository{CreateFunc: func(ctx context.Context, todo *entity.Todo) error {
			called = true
			return nil
		}}

		_, err := NewTodoUsecase(repo).Create(context.Background(), 1, "   ", "")

		assert.ErrorIs(t, err, ErrTitleRequired)
		assert.False(t, called)
	})
}

func TestTodoUsecase_Update(t *testing.T) {
	t.Parallel()

	newDesc := "1L"

	tests := []struct {
		name        string
		userID      uint
		id          uint
		in          UpdateInput
		expectedErr error
		wantDesc    string
	}{
		{"owner updates title only", 1, 10, UpdateInput{Title: "buy oat milk"}, nil, "2L"},
		{"owner updates description", 1, 10, UpdateInput{Title: "buy milk", Description: &newDesc}, nil, "1L"},
		{"other user's todo", 2, 10, UpdateInput{Title: "x"}, ErrNoPermission, ""},
		{"missing todo", 1, 99, UpdateInput{Title: "x"}, ErrNoPermission, ""},
		{"blank title", 1, 10, UpdateInput{Title: ""}, ErrTitleRequired, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var saved *entity.Todo
			repo := &mockTodoRepository{
				FindByIDFunc: ownedBy,
				UpdateFunc: func(ctx context.Context, todo *entity.Todo) error {
					saved = todo
					return nil
				},
			}

			todo, err := NewTodoUsecase(repo).Update(context.Background(), tt.userID, tt.id, tt.in)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, saved, "repository must not be written")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in.Title, todo.Title)
			assert.Equal(t, tt.wantDesc, todo.Description)
			assert.Same(t, todo, saved)
		})
	}
}

func TestTodoUsecase_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		userID      uint
		id          uint
		expectedErr error
	}{
		{"owner", 1, 10, nil},
		{"other user's todo", 2, 10, ErrNoPermission},
		{"missing todo", 1, 99, ErrNoPermission},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deleted := false
			repo := &mockTodoRepository{
				FindByIDFunc: ownedBy,
				DeleteFunc: func(ctx context.Context, userID, id uint) error {
					deleted = true
					return nil
				},
			}

			err := NewTodoUsecase(repo).Delete(context.Background(), tt.userID, tt.id)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.False(t, deleted)
				return
			}
			require.NoError(t, err)
			assert.True(t, deleted)
		})
	}
}

func TestTodoUsecase_Delete_StoreError(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("lookup failed")
	repo := &mockTodoRepository{FindByIDFunc: func(ctx context.Context, id uint) (*entity.Todo, error) {
		return nil, dbErr
	}}

	err := NewTodoUsecase(repo).Delete(context.Background(), 1, 10)

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrNoPermission)
}
