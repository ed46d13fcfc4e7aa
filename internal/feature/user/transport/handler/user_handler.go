// Package handler はuserフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/api"
	"todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/feature/user/transport/http/dto"
	"todo_backend/internal/feature/user/usecase"
	jwtmw "todo_backend/internal/platform/jwt"
)

// UserUsecase はログイン中のユーザー情報を取得するユースケースです。
type UserUsecase interface {
	GetCurrentUser(ctx context.Context, userID uint) (*entity.User, error)
}

// UserHandler はユーザー情報に関するHTTPリクエストを処理します。
type UserHandler struct {
	uc UserUsecase
}

// NewUserHandler は新しい UserHandler を作成します。
func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Me はログイン中のユーザー情報を返すAPIです。
// jwtmw.AuthRequired の後に登録する必要があります。
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Unauthorized", StatusCode: http.StatusUnauthorized})
		return
	}

	user, err := h.uc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		// トークン発行後にユーザーが削除された場合は未認証として扱う
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Unauthorized", StatusCode: http.StatusUnauthorized})
			return
		}
		slog.Error("failed to get current user", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.NewErrorResponse(http.StatusInternalServerError, "Internal server error"))
		return
	}

	c.JSON(http.StatusOK, dto.UserRes{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
}
