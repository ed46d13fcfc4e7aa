// Package redis はRedisクライアントの生成を提供します。
package redis

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options はRedis接続設定です。
type Options struct {
	Host     string
	Port     string
	Password string
}

// Enabled はRedisが設定されているかを返します。Hostが空の場合はキャッシュなしで動作します。
func (o Options) Enabled() bool {
	return o.Host != ""
}

// Addr は host:port 形式のアドレスを返します。
func (o Options) Addr() string {
	port := o.Port
	if port == "" {
		port = "6379"
	}
	return net.JoinHostPort(o.Host, port)
}

// NewRedisClient はRedisクライアントを生成し、接続を確認します。
func NewRedisClient(ctx context.Context, o Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     o.Addr(),
		Password: o.Password,
		DB:       0,
	})

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", o.Addr(), "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", o.Addr())
	return rdb, nil
}
