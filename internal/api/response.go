// Package api はHTTPレスポンスの共通スキーマを定義します。
// エラーレスポンスは {message, error, statusCode} 形式で統一します。
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MessageResponse はメッセージのみを返すレスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

// CSRFResponse は /auth/csrf のレスポンスです。
type CSRFResponse struct {
	CSRFToken string `json:"csrfToken"`
}

// ErrorResponse はエラーレスポンスです。
type ErrorResponse struct {
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"statusCode"`
}

// ValidationErrorResponse はフィールド単位のバリデーションエラーを返すレスポンスです。
type ValidationErrorResponse struct {
	Message    []string `json:"message"`
	Error      string   `json:"error"`
	StatusCode int      `json:"statusCode"`
}

// NewErrorResponse はステータスコードとメッセージからErrorResponseを生成します。
func NewErrorResponse(status int, message string) ErrorResponse {
	return ErrorResponse{
		Message:    message,
		Error:      http.StatusText(status),
		StatusCode: status,
	}
}

// NewValidationErrorResponse はバリデーションエラーから400レスポンスを生成します。
func NewValidationErrorResponse(err error) ValidationErrorResponse {
	return ValidationErrorResponse{
		Message:    ValidationMessages(err),
		Error:      http.StatusText(http.StatusBadRequest),
		StatusCode: http.StatusBadRequest,
	}
}

// ValidationMessages はバインド時のエラーをフィールドごとのメッセージに変換します。
// validatorのエラー以外（JSON構文エラー等）は汎用メッセージにまとめます。
func ValidationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"invalid request body"}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, FieldMessage(fe.Field(), fe.Tag(), fe.Param()))
	}
	return msgs
}

// FieldMessage はフィールド名・タグ・パラメータから表示用メッセージを組み立てます。
func FieldMessage(field, tag, param string) string {
	field = strings.ToLower(field[:1]) + field[1:]
	switch tag {
	case "required":
		return fmt.Sprintf("%s should not be empty", field)
	case "email":
		return fmt.Sprintf("%s must be an email", field)
	case "min":
		return fmt.Sprintf("%s must be longer than or equal to %s characters", field, param)
	case "max":
		return fmt.Sprintf("%s must be shorter than or equal to %s characters", field, param)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
