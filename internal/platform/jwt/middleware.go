package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/api"
	"todo_backend/internal/feature/auth/domain/entity"
)

const (
	// CookieName はセッショントークンを保持するCookie名です。
	CookieName = "access_token"

	// ContextUserID は認証済みユーザーIDをgin.Contextに保存するキーです。
	ContextUserID = "userID"
)

// TokenParser はトークン文字列を検証して内容を返します。
type TokenParser interface {
	Parse(signed string) (*entity.SessionToken, error)
}

// AuthRequired returns a Gin middleware that validates the session token
// and restricts access to authenticated users only.
// The token is read from the access_token cookie, falling back to an Authorization bearer header.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Cookie（なければ Authorization ヘッダー）からトークンを取得
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Unauthorized", StatusCode: http.StatusUnauthorized})
			return
		}

		// 2. 署名と有効期限を検証
		token, err := parser.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Unauthorized", StatusCode: http.StatusUnauthorized})
			return
		}

		// 3. ユーザーIDをコンテキストへ
		c.Set(ContextUserID, token.Subject)
		c.Next()
	}
}

// UserIDFrom は AuthRequired が設定したユーザーIDを取り出します。
func UserIDFrom(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func tokenFromRequest(c *gin.Context) string {
	if v, err := c.Cookie(CookieName); err == nil && v != "" {
		return v
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
