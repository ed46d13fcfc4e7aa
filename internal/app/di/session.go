package di

import (
	"log/slog"

	"github.com/gin-contrib/sessions"

	"todo_backend/internal/config"
	"todo_backend/internal/platform/csrf"
)

// devCSRFSecret は CSRF_SECRET 未設定の開発環境でのみ使用する署名鍵です。
const devCSRFSecret = "dev-only-csrf-secret"

// NewSessionStore はCSRFシークレットを保持するセッションストアを生成します。
// CSRF_SECRET が空の場合（開発環境のみ許可）は固定の開発用鍵にフォールバックします。
func NewSessionStore(cfg *config.Config) sessions.Store {
	secret := cfg.CSRFSecret
	if secret == "" {
		slog.Warn("CSRF_SECRET is not set. Using a development-only signing key.")
		secret = devCSRFSecret
	}
	return csrf.NewStore(secret)
}
