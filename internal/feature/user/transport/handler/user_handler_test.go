package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/feature/user/usecase"
	jwtmw "todo_backend/internal/platform/jwt"
)

// mockUserUsecase はUserUsecaseインターフェースのモック実装です。
type mockUserUsecase struct {
	GetCurrentUserFunc func(ctx context.Context, userID uint) (*entity.User, error)
}

func (m *mockUserUsecase) GetCurrentUser(ctx context.Context, userID uint) (*entity.User, error) {
	return m.GetCurrentUserFunc(ctx, userID)
}

// TestUserHandler_Me はMeハンドラーの各種シナリオをテーブル駆動テストで検証します。
func TestUserHandler_Me(t *testing.T) {
	gin.SetMode(gin.TestMode)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name           string
		setUserID      bool
		getFunc        func(ctx context.Context, userID uint) (*entity.User, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "success: returns user without password hash",
			setUserID: true,
			getFunc: func(ctx context.Context, userID uint) (*entity.User, error) {
				return &entity.User{ID: userID, Email: "a@b.com", Password: "$2a$10$hash", CreatedAt: created, UpdatedAt: created}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":5,"email":"a@b.com","createdAt":"2024-01-02T03:04:05Z","updatedAt":"2024-01-02T03:04:05Z"}`,
		},
		{
			name:           "failure: no authenticated user in context",
			setUserID:      false,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"message":"Unauthorized","statusCode":401}`,
		},
		{
			name:      "failure: user no longer exists",
			setUserID: true,
			getFunc: func(ctx context.Context, userID uint) (*entity.User, error) {
				return nil, usecase.ErrUserNotFound
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"message":"Unauthorized","statusCode":401}`,
		},
		{
			name:      "failure: store error",
			setUserID: true,
			getFunc: func(ctx context.Context, userID uint) (*entity.User, error) {
				return nil, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Internal server error","error":"Internal Server Error","statusCode":500}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUserHandler(&mockUserUsecase{GetCurrentUserFunc: tt.getFunc})

			r := gin.New()
			r.GET("/user", func(c *gin.Context) {
				if tt.setUserID {
					c.Set(jwtmw.ContextUserID, uint(5))
				}
				c.Next()
			}, h.Me)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.NotContains(t, w.Body.String(), "$2a$")
		})
	}
}
