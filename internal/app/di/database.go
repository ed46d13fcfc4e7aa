// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"todo_backend/internal/config"
	authentity "todo_backend/internal/feature/auth/domain/entity"
	todoadapters "todo_backend/internal/feature/todo/adapters"
	"todo_backend/internal/platform/db"
)

// Models はマイグレーション対象のモデル一覧です。
func Models() []any {
	return []any{&authentity.User{}, &todoadapters.TodoModel{}}
}

// OpenDatabase はDBに接続し、RUN_MIGRATIONS が有効な場合はスキーマを作成します。
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	gdb, err := db.Open(db.ConfigFrom(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.RunMigrations {
		if err := db.Migrate(gdb, Models()...); err != nil {
			return nil, err
		}
		slog.Info("database migrated")
	}
	return gdb, nil
}
