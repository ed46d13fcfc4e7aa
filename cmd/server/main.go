package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"todo_backend/internal/app/di"
	"todo_backend/internal/app/router"
	"todo_backend/internal/config"
	authadapters "todo_backend/internal/feature/auth/adapters"
	authhandler "todo_backend/internal/feature/auth/transport/handler"
	authusecase "todo_backend/internal/feature/auth/usecase"
	todohandler "todo_backend/internal/feature/todo/transport/handler"
	todousecase "todo_backend/internal/feature/todo/usecase"
	userhandler "todo_backend/internal/feature/user/transport/handler"
	userusecase "todo_backend/internal/feature/user/usecase"
	"todo_backend/internal/platform/docs"
	platformhandler "todo_backend/internal/platform/http/handler"
	"todo_backend/internal/platform/logging"
	"todo_backend/internal/platform/password"
	infraredis "todo_backend/internal/platform/redis"
)

const apiVersion = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.IsDevelopment())
	slog.SetDefault(logger)

	gin.SetMode(cfg.GinMode)


	// db
	db, err := di.OpenDatabase(cfg)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("failed to get sql.DB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Redis
	var rdb *redisv9.Client
	redisOpts := infraredis.Options{Host: cfg.RedisHost, Port: cfg.RedisPort, Password: cfg.RedisPassword}
	if redisOpts.Enabled() {
		if tmp, err := infraredis.NewRedisClient(context.Background(), redisOpts); err != nil {
			slog.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	todoRepo := di.NewTodoRepository(db, rdb, cfg.TodoCacheTTL)

	// Usecase
	issuer := di.NewTokenIssuer(cfg)
	authUC := authusecase.NewAuthUsecase(userRepo, password.NewBcryptHasher(cfg.BcryptCost), issuer)
	userUC := userusecase.NewUserUsecase(userRepo)
	todoUC := todousecase.NewTodoUsecase(todoRepo)

	// Handler
	handlers := router.Handlers{
		Auth:   authhandler.NewAuthHandler(authUC),
		User:   userhandler.NewUserHandler(userUC),
		Todo:   todohandler.NewTodoHandler(todoUC),
		Health: platformhandler.NewHealthHandler(sqlDB),
	}

	opts := router.Options{
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		SessionStore:   di.NewSessionStore(cfg),
		Tokens:         issuer,
	}
	// APIドキュメントは開発環境のみ公開
	if cfg.IsDevelopment() {
		opts.Docs = docs.NewDocument(apiVersion)
	}

	// ルータ生成
	r := router.NewRouter(handlers, opts)

	slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
