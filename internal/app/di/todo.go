package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	todoadapters "todo_backend/internal/feature/todo/adapters"
	"todo_backend/internal/feature/todo/usecase"
	"todo_backend/internal/platform/cache"
)

// NewTodoRepository creates a TodoRepository implementation.
// If Redis is available, the gorm repository is wrapped with a caching decorator.
// Otherwise, the gorm repository is returned as is.
func NewTodoRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) usecase.TodoRepository {
	repo := todoadapters.NewTodoRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingTodoRepository(rdb, ttl, repo, "todos")
}
