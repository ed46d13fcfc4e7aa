// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"todo_backend/internal/feature/todo/domain/entity"
	"todo_backend/internal/feature/todo/usecase"
)

// CachingTodoRepository decorates a TodoRepository with a Redis cache of each user's todo list.
// Single-todo lookups are not cached; every write drops the owner's list entry.
type CachingTodoRepository struct {
	inner     usecase.TodoRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.TodoRepository = (*CachingTodoRepository)(nil)

// NewCachingTodoRepository decorates a TodoRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "todos".
// A nil rdb disables caching.
func NewCachingTodoRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TodoRepository, namespace string) *CachingTodoRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "todos"
	}
	return &CachingTodoRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// ListByUser returns the user's todos, checking the cache first.
func (c *CachingTodoRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Todo, error) {
	if c.rdb == nil {
		return c.inner.ListByUser(ctx, userID)
	}

	key := c.listKey(userID)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Todo
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// FindByID always reads through to the underlying repository.
func (c *CachingTodoRepository) FindByID(ctx context.Context, id uint) (*entity.Todo, error) {
	return c.inner.FindByID(ctx, id)
}

func (c *CachingTodoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	if err := c.inner.Create(ctx, todo); err != nil {
		return err
	}
	c.invalidate(ctx, todo.UserID)
	return nil
}

func (c *CachingTodoRepository) Update(ctx context.Context, todo *entity.Todo) error {
	if err := c.inner.Update(ctx, todo); err != nil {
		return err
	}
	c.invalidate(ctx, todo.UserID)
	return nil
}

func (c *CachingTodoRepository) Delete(ctx context.Context, userID, id uint) error {
	if err := c.inner.Delete(ctx, userID, id); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

// invalidate drops the cached list for the user. Failures are logged, not returned.
func (c *CachingTodoRepository) invalidate(ctx context.Context, userID uint) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.listKey(userID)).Err(); err != nil {
		slog.Warn("failed to invalidate todo cache", "user_id", userID, "error", err)
	}
}

func (c *CachingTodoRepository) listKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", c.namespace, userID)
}
