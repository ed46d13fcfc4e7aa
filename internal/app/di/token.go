package di

import (
	"log/slog"

	"todo_backend/internal/config"
	jwtmw "todo_backend/internal/platform/jwt"
)

// devJWTSecret は JWT_SECRET 未設定の開発環境でのみ使用する署名鍵です。
const devJWTSecret = "dev-only-jwt-secret"

// NewTokenIssuer はセッショントークンのIssuerを生成します。
// JWT_SECRET が空の場合（開発環境のみ許可）は固定の開発用鍵にフォールバックします。
func NewTokenIssuer(cfg *config.Config) *jwtmw.Issuer {
	secret := cfg.JWTSecret
	if secret == "" {
		slog.Warn("JWT_SECRET is not set. Using a development-only signing key.")
		secret = devJWTSecret
	}
	return jwtmw.NewIssuer(secret, cfg.JWTExpiresIn)
}
