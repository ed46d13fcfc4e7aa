// Package adapters はtodoフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"todo_backend/internal/feature/todo/domain/entity"
	"todo_backend/internal/feature/todo/usecase"
)

type todoGorm struct {
	db *gorm.DB
}

var _ usecase.TodoRepository = (*todoGorm)(nil)

// NewTodoRepository は指定されたgorm.DB接続でtodoリポジトリを生成します。
func NewTodoRepository(db *gorm.DB) *todoGorm {
	return &todoGorm{db: db}
}

// TodoModel はtodosテーブルの行を表します。
type TodoModel struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	UserID      uint   `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (TodoModel) TableName() string {
	return "todos"
}

func toModel(e *entity.Todo) TodoModel {
	return TodoModel{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		UserID:      e.UserID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toEntity(m TodoModel) entity.Todo {
	return entity.Todo{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *todoGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Todo, error) {
	var rows []TodoModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Todo, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

func (r *todoGorm) FindByID(ctx context.Context, id uint) (*entity.Todo, error) {
	var m TodoModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTodoNotFound
		}
		return nil, err
	}
	e := toEntity(m)
	return &e, nil
}

// Create はtodoを追加し、採番されたIDと作成日時をエンティティに書き戻します。
func (r *todoGorm) Create(ctx context.Context, todo *entity.Todo) error {
	m := toModel(todo)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*todo = toEntity(m)
	return nil
}

// Update はタイトルと説明を更新します。所有者は変更しません。
func (r *todoGorm) Update(ctx context.Context, todo *entity.Todo) error {
	res := r.db.WithContext(ctx).
		Model(&TodoModel{ID: todo.ID}).
		Where("user_id = ?", todo.UserID).
		Updates(map[string]any{
			"title":       todo.Title,
			"description": todo.Description,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTodoNotFound
	}
	updated, err := r.FindByID(ctx, todo.ID)
	if err != nil {
		return err
	}
	*todo = *updated
	return nil
}

func (r *todoGorm) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&TodoModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTodoNotFound
	}
	return nil
}
