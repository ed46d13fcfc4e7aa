// Package docs はAPIのOpenAPI 3ドキュメントを組み立てて配信します。
// 開発環境でのみ /api/docs に登録されます。
package docs

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
)

const (
	cookieAuth = "cookieAuth"
	csrfHeader = "csrfToken"
)

// NewDocument はAPI全体のOpenAPIドキュメントを生成します。
func NewDocument(version string) *openapi3.T {
	components := openapi3.NewComponents()
	components.SecuritySchemes = openapi3.SecuritySchemes{
		cookieAuth: &openapi3.SecuritySchemeRef{Value: openapi3.NewSecurityScheme().
			WithType("apiKey").WithIn("cookie").WithName("access_token")},
		csrfHeader: &openapi3.SecuritySchemeRef{Value: openapi3.NewSecurityScheme().
			WithType("apiKey").WithIn("header").WithName("csrf-token")},
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Todo API",
			Description: "Authentication and todo management",
			Version:     version,
		},
		Components: &components,
		Paths:      openapi3.NewPaths(),
	}

	credentials := openapi3.NewObjectSchema().
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("password", openapi3.NewStringSchema().WithMinLength(5).WithMaxLength(72)).
		WithRequired([]string{"email", "password"})

	doc.AddOperation("/auth/csrf", http.MethodGet, op("Issue an anti-forgery token", false,
		withResponse(http.StatusOK, "token for the csrf-token header",
			openapi3.NewObjectSchema().WithProperty("csrfToken", openapi3.NewStringSchema()))))
	doc.AddOperation("/auth/signup", http.MethodPost, op("Register a new user", false,
		withBody(credentials),
		withResponse(http.StatusCreated, "registered", messageSchema()),
		withResponse(http.StatusBadRequest, "validation failed", errorSchema()),
		withResponse(http.StatusForbidden, "email already taken", errorSchema())))
	doc.AddOperation("/auth/login", http.MethodPost, op("Log in and receive the access_token cookie", false,
		withBody(credentials),
		withResponse(http.StatusOK, "logged in; sets access_token cookie", messageSchema()),
		withResponse(http.StatusForbidden, "invalid credentials", errorSchema())))
	doc.AddOperation("/auth/logout", http.MethodPost, op("Clear the access_token cookie", false,
		withResponse(http.StatusOK, "logged out", messageSchema())))

	doc.AddOperation("/user", http.MethodGet, op("Get the current user", true,
		withResponse(http.StatusOK, "current user", userSchema()),
		withResponse(http.StatusUnauthorized, "not logged in", errorSchema())))

	todoInput := openapi3.NewObjectSchema().
		WithProperty("title", openapi3.NewStringSchema().WithMinLength(1).WithMaxLength(255)).
		WithProperty("description", openapi3.NewStringSchema()).
		WithRequired([]string{"title"})

	doc.AddOperation("/todo", http.MethodGet, op("List the caller's todos", true,
		withResponse(http.StatusOK, "todos, newest first", openapi3.NewArraySchema().WithItems(todoSchema()))))
	doc.AddOperation("/todo", http.MethodPost, op("Create a todo", true,
		withBody(todoInput),
		withResponse(http.StatusCreated, "created", todoSchema())))
	doc.AddOperation("/todo/{id}", http.MethodGet, op("Get a todo", true,
		withIDParam(),
		withResponse(http.StatusOK, "todo", todoSchema()),
		withResponse(http.StatusNotFound, "not found", errorSchema())))
	doc.AddOperation("/todo/{id}", http.MethodPatch, op("Update a todo", true,
		withIDParam(),
		withBody(todoInput),
		withResponse(http.StatusOK, "updated", todoSchema()),
		withResponse(http.StatusForbidden, "no permission", errorSchema())))
	doc.AddOperation("/todo/{id}", http.MethodDelete, op("Delete a todo", true,
		withIDParam(),
		withResponse(http.StatusNoContent, "deleted", nil),
		withResponse(http.StatusForbidden, "no permission", errorSchema())))

	doc.AddOperation("/healthz", http.MethodGet, op("Health check", false,
		withResponse(http.StatusOK, "healthy", openapi3.NewObjectSchema().WithProperty("status", openapi3.NewStringSchema()))))

	return doc
}

// Handler はドキュメントをJSONで返すハンドラーを返します。
func Handler(doc *openapi3.T) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, doc)
	}
}

type opOption func(*openapi3.Operation)

func op(summary string, authenticated bool, opts ...opOption) *openapi3.Operation {
	o := openapi3.NewOperation()
	o.Summary = summary
	o.Responses = openapi3.NewResponses(openapi3.WithStatus(http.StatusInternalServerError,
		&openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("internal error").WithJSONSchema(errorSchema())}))
	if authenticated {
		o.Security = openapi3.NewSecurityRequirements().
			With(openapi3.NewSecurityRequirement().Authenticate(cookieAuth))
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func withBody(schema *openapi3.Schema) opOption {
	return func(o *openapi3.Operation) {
		o.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(schema)}
	}
}

func withResponse(status int, description string, schema *openapi3.Schema) opOption {
	return func(o *openapi3.Operation) {
		res := openapi3.NewResponse().WithDescription(description)
		if schema != nil {
			res = res.WithJSONSchema(schema)
		}
		o.AddResponse(status, res)
	}
}

func withIDParam() opOption {
	return func(o *openapi3.Operation) {
		o.AddParameter(openapi3.NewPathParameter("id").WithSchema(openapi3.NewIntegerSchema().WithMin(1)))
	}
}

func messageSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().WithProperty("message", openapi3.NewStringSchema())
}

func errorSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("error", openapi3.NewStringSchema()).
		WithProperty("statusCode", openapi3.NewIntegerSchema())
}

func userSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewIntegerSchema()).
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("createdAt", openapi3.NewDateTimeSchema()).
		WithProperty("updatedAt", openapi3.NewDateTimeSchema())
}

func todoSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewIntegerSchema()).
		WithProperty("title", openapi3.NewStringSchema()).
		WithProperty("description", openapi3.NewStringSchema()).
		WithProperty("userId", openapi3.NewIntegerSchema()).
		WithProperty("createdAt", openapi3.NewDateTimeSchema()).
		WithProperty("updatedAt", openapi3.NewDateTimeSchema())
}
