package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	authhandler "todo_backend/internal/feature/auth/transport/handler"
	todohandler "todo_backend/internal/feature/todo/transport/handler"
	userhandler "todo_backend/internal/feature/user/transport/handler"
	"todo_backend/internal/platform/csrf"
	"todo_backend/internal/platform/docs"
	platformhandler "todo_backend/internal/platform/http/handler"
	"todo_backend/internal/platform/http/middleware"
	jwtmw "todo_backend/internal/platform/jwt"
)

// Handlers はルーターに登録するハンドラー一式です。
type Handlers struct {
	Auth   *authhandler.AuthHandler
	User   *userhandler.UserHandler
	Todo   *todohandler.TodoHandler
	Health *platformhandler.HealthHandler
}

// Options はミドルウェアの設定です。
type Options struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	SessionStore   sessions.Store
	Tokens         jwtmw.TokenParser

	// Docs が nil の場合 /api/docs は登録しない（本番環境）
	Docs *openapi3.T
}

// NewRouter はミドルウェアとルートを登録したginエンジンを生成します。
func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r.Use(middleware.RequestLogger(logger))

	// フロントエンドは別オリジンからCookie付きで呼び出す
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "csrf-token", "x-csrf-token", "xsrf-token", "x-xsrf-token"},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 状態を変更するリクエストはすべてCSRFトークンが必要
	r.Use(csrf.Sessions(opts.SessionStore), csrf.Verify())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	if opts.Docs != nil {
		r.GET("/api/docs", docs.Handler(opts.Docs))
	}

	authGroup := r.Group("/auth")
	{
		authGroup.GET("/csrf", csrf.IssueToken)
		// 新規ユーザー登録
		authGroup.POST("/signup", h.Auth.SignUp)
		// ログイン（access_token Cookie を発行）
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", h.Auth.Logout)
	}

	// 認証必須のルート
	// → access_token Cookie（または Bearer ヘッダー）に有効なトークンが必要
	authed := r.Group("/")
	authed.Use(jwtmw.AuthRequired(opts.Tokens))
	{
		authed.GET("/user", h.User.Me)

		authed.GET("/todo", h.Todo.List)
		authed.GET("/todo/:id", h.Todo.Get)
		authed.POST("/todo", h.Todo.Create)
		authed.PATCH("/todo/:id", h.Todo.Update)
		authed.DELETE("/todo/:id", h.Todo.Delete)
	}

	return r
}
