// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/api"
	"todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/feature/auth/transport/http/dto"
	"todo_backend/internal/feature/auth/usecase"
	jwtmw "todo_backend/internal/platform/jwt"
)

const (
	msgLoginSucceeded    = "ログインに成功しました"
	msgEmailTaken        = "This email is already taken"
	msgInvalidCredential = "Email or password is incorrect"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// SignUp は指定されたメールアドレスとパスワードで新規ユーザーを登録します。
	SignUp(ctx context.Context, email, password string) error
	// Login はユーザーを認証し、成功時に署名済みセッショントークンを返します。
	Login(ctx context.Context, email, password string) (*entity.SessionToken, error)
	// Logout はログアウトを処理します。
	Logout(ctx context.Context) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// トークンはレスポンスボディではなく access_token Cookie で返します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SignUp はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メール重複時は403を返却
// - 成功時は201を返却
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewValidationErrorResponse(err))
		return
	}
	if err := h.auth.SignUp(c.Request.Context(), req.Email, req.Password); err != nil {
		slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		writeUsecaseError(c, err)
		return
	}
	slog.Info("user signup successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "ok"})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 認証成功時はセッショントークンを access_token Cookie に設定して200を返却します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewValidationErrorResponse(err))
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		writeUsecaseError(c, err)
		return
	}
	setSessionCookie(c, token.Signed)
	slog.Info("user login successful", "user_id", token.Subject, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: msgLoginSucceeded})
}

// Logout は access_token Cookie を空の値で上書きします。
// ログインしていない状態で呼ばれても同じレスポンスを返します。
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context()); err != nil {
		slog.Error("logout failed", "error", err, "remote_addr", c.ClientIP())
		writeUsecaseError(c, err)
		return
	}
	setSessionCookie(c, "")
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// setSessionCookie はHttpOnly・Secure・SameSite=None・Path=/ のCookieを書き込みます。
// maxAge 0 はブラウザセッションの間だけ保持されるCookieになります。
func setSessionCookie(c *gin.Context, value string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(jwtmw.CookieName, value, 0, "/", "", true, true)
}

// writeUsecaseError はユースケースのエラーをHTTPレスポンスに変換します。
func writeUsecaseError(c *gin.Context, err error) {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{
			Message:    verr.Messages(),
			Error:      http.StatusText(http.StatusBadRequest),
			StatusCode: http.StatusBadRequest,
		})
	case errors.Is(err, usecase.ErrDuplicateCredential):
		c.JSON(http.StatusForbidden, api.NewErrorResponse(http.StatusForbidden, msgEmailTaken))
	case errors.Is(err, usecase.ErrInvalidCredential):
		c.JSON(http.StatusForbidden, api.NewErrorResponse(http.StatusForbidden, msgInvalidCredential))
	default:
		c.JSON(http.StatusInternalServerError, api.NewErrorResponse(http.StatusInternalServerError, "Internal server error"))
	}
}
