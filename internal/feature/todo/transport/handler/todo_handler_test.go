package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo_backend/internal/feature/todo/domain/entity"
	"todo_backend/internal/feature/todo/usecase"
	jwtmw "todo_backend/internal/platform/jwt"
)

// mockTodoUsecase はTodoUsecaseインターフェースのモック実装です。
type mockTodoUsecase struct {
	ListFunc   func(ctx context.Context, userID uint) ([]entity.Todo, error)
	GetFunc    func(ctx context.Context, userID, id uint) (*entity.Todo, error)
	CreateFunc func(ctx context.Context, userID uint, title, description string) (*entity.Todo, error)
	UpdateFunc func(ctx context.Context, userID, id uint, in usecase.UpdateInput) (*entity.Todo, error)
	DeleteFunc func(ctx context.Context, userID, id uint) error
}

func (m *mockTodoUsecase) List(ctx context.Context, userID uint) ([]entity.Todo, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockTodoUsecase) Get(ctx context.Context, userID, id uint) (*entity.Todo, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, id)
	}
	return nil, usecase.ErrTodoNotFound
}

func (m *mockTodoUsecase) Create(ctx context.Context, userID uint, title, description string) (*entity.Todo, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, title, description)
	}
	return &entity.Todo{ID: 1, Title: title, Description: description, UserID: userID}, nil
}

func (m *mockTodoUsecase) Update(ctx context.Context, userID, id uint, in usecase.UpdateInput) (*entity.Todo, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, in)
	}
	return nil, usecase.ErrNoPermission
}

func (m *mockTodoUsecase) Delete(ctx context.Context, userID, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

// newTodoRouter はユーザーID 1 で認証済みの状態を再現したルーターを作成します。
func newTodoRouter(uc TodoUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTodoHandler(uc)
	r := gin.New()
	g := r.Group("/todo", func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, uint(1))
		c.Next()
	})
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func serve(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTodoHandler_List(t *testing.T) {
	uc := &mockTodoUsecase{ListFunc: func(ctx context.Context, userID uint) ([]entity.Todo, error) {
		return []entity.Todo{{ID: 2, Title: "b", UserID: userID}, {ID: 1, Title: "a", UserID: userID}}, nil
	}}

	w := serve(newTodoRouter(uc), http.MethodGet, "/todo", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "b", body[0]["title"])
	assert.Equal(t, float64(1), body[0]["userId"])
}

func TestTodoHandler_List_Empty(t *testing.T) {
	w := serve(newTodoRouter(&mockTodoUsecase{}), http.MethodGet, "/todo", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestTodoHandler_Get(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		getFunc        func(ctx context.Context, userID, id uint) (*entity.Todo, error)
		expectedStatus int
	}{
		{
			name: "success",
			path: "/todo/10",
			getFunc: func(ctx context.Context, userID, id uint) (*entity.Todo, error) {
				return &entity.Todo{ID: id, Title: "x", UserID: userID}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{name: "not found or foreign", path: "/todo/10", expectedStatus: http.StatusNotFound},
		{name: "non-numeric id", path: "/todo/abc", expectedStatus: http.StatusBadRequest},
		{name: "zero id", path: "/todo/0", expectedStatus: http.StatusBadRequest},
		{
			name: "store error",
			path: "/todo/10",
			getFunc: func(ctx context.Context, userID, id uint) (*entity.Todo, error) {
				return nil, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newTodoRouter(&mockTodoUsecase{GetFunc: tt.getFunc}), http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestTodoHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		expectedStatus int
	}{
		{"success", gin.H{"title": "buy milk", "description": "2L"}, http.StatusCreated},
		{"title only", gin.H{"title": "buy milk"}, http.StatusCreated},
		{"missing title", gin.H{"description": "2L"}, http.StatusBadRequest},
		{"malformed body", "oops", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newTodoRouter(&mockTodoUsecase{}), http.MethodPost, "/todo", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestTodoHandler_Create_BlankTitle(t *testing.T) {
	uc := &mockTodoUsecase{CreateFunc: func(ctx context.Context, userID uint, title, description string) (*entity.Todo, error) {
		return nil, usecase.ErrTitleRequired
	}}

	w := serve(newTodoRouter(uc), http.MethodPost, "/todo", gin.H{"title": "  "})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":["title should not be empty"],"error":"Bad Request","statusCode":400}`, w.Body.String())
}

func TestTodoHandler_Update(t *testing.T) {
	t.Run("success keeps description when omitted", func(t *testing.T) {
		var got usecase.UpdateInput
		uc := &mockTodoUsecase{UpdateFunc: func(ctx context.Context, userID, id uint, in usecase.UpdateInput) (*entity.Todo, error) {
			got = in
			return &entity.Todo{ID: id, Title: in.Title, UserID: userID}, nil
		}}

		w := serve(newTodoRouter(uc), http.MethodPatch, "/todo/10", gin.H{"title": "new"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "new", got.Title)
		assert.Nil(t, got.Description)
	})

	t.Run("foreign or missing todo", func(t *testing.T) {
		w := serve(newTodoRouter(&mockTodoUsecase{}), http.MethodPatch, "/todo/10", gin.H{"title": "new"})

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"message":"No permission to update","error":"Forbidden","statusCode":403}`, w.Body.String())
	})
}

func TestTodoHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		w := serve(newTodoRouter(&mockTodoUsecase{}), http.MethodDelete, "/todo/10", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("foreign or missing todo", func(t *testing.T) {
		uc := &mockTodoUsecase{DeleteFunc: func(ctx context.Context, userID, id uint) error {
			return usecase.ErrNoPermission
		}}

		w := serve(newTodoRouter(uc), http.MethodDelete, "/todo/10", nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"message":"No permission to delete","error":"Forbidden","statusCode":403}`, w.Body.String())
	})
}

func TestTodoHandler_Unauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewTodoHandler(&mockTodoUsecase{})
	r := gin.New()
	r.GET("/todo", h.List)

	w := serve(r, http.MethodGet, "/todo", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
