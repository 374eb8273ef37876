package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

// Renderer draws a named view. HTML templates are not part of this service;
// JSONRenderer is the default and what tests read.
type Renderer interface {
	Render(ctx *gin.Context, status int, view string, data gin.H)
}

type JSONRenderer struct{}

func (JSONRenderer) Render(ctx *gin.Context, status int, view string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	ctx.JSON(status, gin.H{
		"view": view,
		"data": data,
	})
}

// view names
const (
	ViewHome        = "home"
	ViewArticle     = "article"
	ViewCategory    = "category"
	ViewAuthor      = "author"
	ViewLogin       = "login"
	ViewRegister    = "register"
	ViewDashboard   = "dashboard"
	ViewNewArticle  = "new-article"
	ViewEditArticle = "edit-article"
	ViewCategories  = "categories"
	ViewForbidden   = "forbidden"
	ViewNotFound    = "404"
	ViewError       = "error"
)

func requestIDFrom(ctx *gin.Context) string {
	v, ok := ctx.Get("request_id")

	if ok {
		s, ok := v.(string)
		if ok && s != "" {
			return s
		}
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func apiError(ctx *gin.Context, code, message string, details interface{}) APIError {
	return APIError{
		Code:      code,
		Message:   message,
		RequestID: requestIDFrom(ctx),
		Details:   details,
	}
}

// renderFormError re-renders a form view with the values in data and an
// error envelope whose code follows the status.
func renderFormError(ctx *gin.Context, r Renderer, status int, view, message string, details interface{}, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["error"] = apiError(ctx, errorCode(status), message, details)

	r.Render(ctx, status, view, data)
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_request"
	case http.StatusUnauthorized:
		return "invalid_credentials"
	case http.StatusConflict:
		return "conflict"
	case http.StatusNotFound:
		return "not_found"
	default:
		return "internal_error"
	}
}

// NotFound renders the 404 view; it doubles as the engine's NoRoute handler.
func NotFound(r Renderer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		r.Render(ctx, http.StatusNotFound, ViewNotFound, gin.H{
			"error": apiError(ctx, "not_found", "Page not found", nil),
		})
	}
}

func Forbidden(r Renderer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		r.Render(ctx, http.StatusForbidden, ViewForbidden, gin.H{
			"error": apiError(ctx, "forbidden", "You do not have access to this page", nil),
		})
	}
}

func renderInternal(ctx *gin.Context, r Renderer, message string) {
	r.Render(ctx, http.StatusInternalServerError, ViewError, gin.H{
		"error": apiError(ctx, "internal_error", message, nil),
	})
}
