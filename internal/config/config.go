// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// EnvDevelopment は開発環境を表すAPP_ENVの値です。
	EnvDevelopment = "development"
	// EnvProduction は本番環境を表すAPP_ENVの値です。
	EnvProduction = "production"

	// DriverPostgres はPostgreSQLを使用するDB_DRIVERの値です。
	DriverPostgres = "postgres"
	// DriverSQLite はSQLiteを使用するDB_DRIVERの値です。
	DriverSQLite = "sqlite"
)

// Config はアプリケーションの設定を保持する構造体です。
type Config struct {
	// サーバー設定
	Port    string // APIサーバーのポート番号
	AppEnv  string // 実行環境 (development, production)
	GinMode string // Ginの実行モード (debug, release, test)

	// CORS設定
	CORSAllowedOrigins []string // CORS許可オリジン

	// 認証設定
	JWTSecret    string        // アクセストークン署名用の秘密鍵
	JWTExpiresIn time.Duration // アクセストークンの有効期間
	CSRFSecret   string        // CSRFセッションCookie署名用の秘密鍵
	BcryptCost   int           // bcryptのコスト

	// DB設定
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SQLitePath    string
	RunMigrations bool

	// Redis設定（未設定の場合はキャッシュなしで動作）
	RedisHost     string
	RedisPort     string
	RedisPassword string
	TodoCacheTTL  time.Duration

	// ログ設定
	LogLevel string
}

// Load は環境変数から設定を読み込みます。
// .env ファイルが存在する場合はそこから読み込みます。
func Load() (*Config, error) {
	// .env が無い場合はシステムの環境変数のみを使用する
	_ = godotenv.Load(".env")

	cfg := &Config{
		Port:    getEnv("PORT", "8000"),
		AppEnv:  getEnv("APP_ENV", EnvDevelopment),
		GinMode: getEnv("GIN_MODE", "debug"),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTExpiresIn: getEnvAsDuration("JWT_EXPIRES_IN", 5*time.Minute),
		CSRFSecret:   os.Getenv("CSRF_SECRET"),
		BcryptCost:   getEnvAsInt("BCRYPT_COST", 10),

		DBDriver:      getEnv("DB_DRIVER", DriverPostgres),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		SQLitePath:    getEnv("SQLITE_PATH", "./todo.db"),
		RunMigrations: getEnvAsBool("RUN_MIGRATIONS", false),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		TodoCacheTTL:  getEnvAsDuration("TODO_CACHE_TTL", 5*time.Minute),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDevelopment は開発環境かどうかを返します。
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// Validate は設定の妥当性を検証します。
func (c *Config) Validate() error {
	if c.DBDriver != DriverPostgres && c.DBDriver != DriverSQLite {
		return errors.New("DB_DRIVER must be either postgres or sqlite")
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}

	// ローカル開発では秘密鍵は任意（起動時に警告を出す）
	if c.GinMode == "release" || !c.IsDevelopment() {
		if c.JWTSecret == "" {
			return errors.New("JWT_SECRET is required outside development")
		}
		if c.CSRFSecret == "" {
			return errors.New("CSRF_SECRET is required outside development")
		}
	}
	return nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します。
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt は環境変数を整数として取得します。
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool は環境変数を真偽値として取得します。
func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration は環境変数を time.Duration として取得します（例: "5m", "1h"）。
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// splitList はカンマ区切りの文字列を空要素を除いたスライスに変換します。
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
