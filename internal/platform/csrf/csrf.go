// Package csrf はセッションCookieに紐づくCSRFトークンの発行と検証を提供します。
//
// セッションごとにランダムなシークレットを署名付きCookie（_csrf）に保存し、
// トークンは「ソルト.HMAC(シークレット, ソルト)」の形式で毎回新しく生成します。
// 同じセッションで発行されたトークンはすべて有効です。
package csrf

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"todo_backend/internal/api"
)

const (
	// SessionName はCSRFシークレットを保持するセッションCookie名です。
	SessionName = "_csrf"

	sessionKeySecret = "secret"
	secretBytes      = 18
	saltBytes        = 8
)

// tokenHeaders はトークンを受け付けるリクエストヘッダーです。
var tokenHeaders = []string{"csrf-token", "x-csrf-token", "xsrf-token", "x-xsrf-token"}

// ErrInvalidToken はトークンが欠落しているか一致しない場合に返されます。
var ErrInvalidToken = errors.New("invalid csrf token")

// NewStore はCSRFシークレット用の署名付きCookieストアを生成します。
// クロスサイトのフロントエンドから送信されるため SameSite=None を指定します。
func NewStore(signingKey string) sessions.Store {
	store := cookie.NewStore([]byte(signingKey))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	return store
}

// Sessions はCSRFセッションを読み書きするミドルウェアを返します。
// Verify と IssueToken より前に登録する必要があります。
func Sessions(store sessions.Store) gin.HandlerFunc {
	return sessions.Sessions(SessionName, store)
}

// IssueToken は GET /auth/csrf のハンドラーです。
// セッションにシークレットがなければ生成して保存し、新しいトークンを返します。
func IssueToken(c *gin.Context) {
	session := sessions.Default(c)
	secret, ok := session.Get(sessionKeySecret).(string)
	if !ok || secret == "" {
		var err error
		secret, err = randomString(secretBytes)
		if err != nil {
			slog.Error("failed to generate csrf secret", "error", err)
			c.JSON(http.StatusInternalServerError, api.NewErrorResponse(http.StatusInternalServerError, "Internal server error"))
			return
		}
		session.Set(sessionKeySecret, secret)
		if err := session.Save(); err != nil {
			slog.Error("failed to save csrf session", "error", err)
			c.JSON(http.StatusInternalServerError, api.NewErrorResponse(http.StatusInternalServerError, "Internal server error"))
			return
		}
	}

	token, err := newToken(secret)
	if err != nil {
		slog.Error("failed to generate csrf token", "error", err)
		c.JSON(http.StatusInternalServerError, api.NewErrorResponse(http.StatusInternalServerError, "Internal server error"))
		return
	}
	c.JSON(http.StatusOK, api.CSRFResponse{CSRFToken: token})
}

// Verify は状態を変更するリクエストのCSRFトークンを検証するミドルウェアです。
// GET・HEAD・OPTIONS は検証しません。
func Verify() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		secret, _ := sessions.Default(c).Get(sessionKeySecret).(string)
		if err := verifyToken(secret, tokenFromRequest(c)); err != nil {
			slog.Warn("csrf verification failed", "method", c.Request.Method, "path", c.Request.URL.Path, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusForbidden, api.NewErrorResponse(http.StatusForbidden, ErrInvalidToken.Error()))
			return
		}
		c.Next()
	}
}

func newToken(secret string) (string, error) {
	salt, err := randomString(saltBytes)
	if err != nil {
		return "", err
	}
	return salt + "." + sign(secret, salt), nil
}

func verifyToken(secret, token string) error {
	if secret == "" || token == "" {
		return ErrInvalidToken
	}
	salt, mac, ok := strings.Cut(token, ".")
	if !ok || salt == "" {
		return ErrInvalidToken
	}
	if subtle.ConstantTimeCompare([]byte(mac), []byte(sign(secret, salt))) != 1 {
		return ErrInvalidToken
	}
	return nil
}

func sign(secret, salt string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(salt))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

func tokenFromRequest(c *gin.Context) string {
	for _, name := range tokenHeaders {
		if v := c.GetHeader(name); v != "" {
			return v
		}
	}
	return ""
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func randomString(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
