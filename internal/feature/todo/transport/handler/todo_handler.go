// Package handler はtodoフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/api"
	"todo_backend/internal/feature/todo/domain/entity"
	"todo_backend/internal/feature/todo/transport/http/dto"
	"todo_backend/internal/feature/todo/usecase"
	jwtmw "todo_backend/internal/platform/jwt"
)

// TodoUsecase はtodo操作のユースケースを定義します。
type TodoUsecase interface {
	List(ctx context.Context, userID uint) ([]entity.Todo, error)
	Get(ctx context.Context, userID, id uint) (*entity.Todo, error)
	Create(ctx context.Context, userID uint, title, description string) (*entity.Todo, error)
	Update(ctx context.Context, userID, id uint, in usecase.UpdateInput) (*entity.Todo, error)
	Delete(ctx context.Context, userID, id uint) error
}

// TodoHandler はtodoのHTTPリクエストを処理します。
// すべてのルートは jwtmw.AuthRequired の後に登録します。
type TodoHandler struct {
	uc TodoUsecase
}

// NewTodoHandler は新しい TodoHandler を作成します。
func NewTodoHandler(uc TodoUsecase) *TodoHandler {
	return &TodoHandler{uc: uc}
}

// List は GET /todo を処理します。
func (h *TodoHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	todos, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err, userID)
		return
	}
	out := make([]dto.TodoRes, 0, len(todos))
	for _, t := range todos {
		out = append(out, dto.FromEntity(t))
	}
	c.JSON(http.StatusOK, out)
}

// Get は GET /todo/:id を処理します。
func (h *TodoHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	todo, err := h.uc.Get(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*todo))
}

// Create は POST /todo を処理します。
func (h *TodoHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.CreateTodoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.NewValidationErrorResponse(err))
		return
	}
	todo, err := h.uc.Create(c.Request.Context(), userID, req.Title, req.Description)
	if err != nil {
		writeError(c, err, userID)
		return
	}
	slog.Info("todo created", "todo_id", todo.ID, "user_id", userID)
	c.JSON(http.StatusCreated, dto.FromEntity(*todo))
}

// Update は PATCH /todo/:id を処理します。
func (h *TodoHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateTodoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.NewValidationErrorResponse(err))
		return
	}
	todo, err := h.uc.Update(c.Request.Context(), userID, id, usecase.UpdateInput{Title: req.Title, Description: req.Description})
	if err != nil {
		if errors.Is(err, usecase.ErrNoPermission) {
			c.JSON(http.StatusForbidden, api.NewErrorResponse(http.StatusForbidden, "No permission to update"))
			return
		}
		writeError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*todo))
}

// Delete は DELETE /todo/:id を処理します。成功時は204を返します。
func (h *TodoHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, usecase.ErrNoPermission) {
			c.JSON(http.StatusForbidden, api.NewErrorResponse(http.StatusForbidden, "No permission to delete"))
			return
		}
		writeError(c, err, userID)
		return
	}
	slog.Info("todo deleted", "todo_id", id, "user_id", userID)
	c.Status(http.StatusNoContent)
}

func requireUser(c *gin.Context) (uint, bool) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Unauthorized", StatusCode: http.StatusUnauthorized})
	}
	return userID, ok
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, api.NewErrorResponse(http.StatusBadRequest, "Validation failed (numeric string is expected)"))
		return 0, false
	}
	return uint(id), true
}

func writeError(c *gin.Context, err error, userID uint) {
	switch {
	case errors.Is(err, usecase.ErrTitleRequired):
		c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{
			Message:    []string{err.Error()},
			Error:      http.StatusText(http.StatusBadRequest),
			StatusCode: http.StatusBadRequest,
		})
	case errors.Is(err, usecase.ErrTodoNotFound):
		c.JSON(http.StatusNotFound, api.NewErrorResponse(http.StatusNotFound, "Todo not found"))
	case errors.Is(err, usecase.ErrNoPermission):
		c.JSON(http.StatusForbidden, api.NewErrorResponse(http.StatusForbidden, "No permission"))
	default:
		slog.Error("todo request failed", "error", err, "user_id", userID, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, api.NewErrorResponse(http.StatusInternalServerError, "Internal server error"))
	}
}
