package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/geocoder89/antologia/internal/domain/article"
	"github.com/geocoder89/antologia/internal/domain/user"
	"github.com/gin-gonic/gin"
)

func formContext(body url.Values) *gin.Context {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	ctx.Request = req

	return ctx
}

func TestBindForm_ValidationErrorsUseFormFieldNames(t *testing.T) {
	var req user.RegisterRequest

	details, ok := bindForm(formContext(url.Values{"username": {"ana"}}), &req)
	if ok {
		t.Fatalf("expected bind failure")
	}

	fields, _ := details.(gin.H)["fields"].([]FieldError)

	wantRules := map[string]string{
		"email":    "required",
		"password": "required",
	}

	found := map[string]FieldError{}
	for _, fieldErr := range fields {
		found[fieldErr.Field] = fieldErr
	}

	for field, rule := range wantRules {
		fieldErr, ok := found[field]
		if !ok {
			t.Fatalf("missing field error for %q: %+v", field, fields)
		}
		if fieldErr.Rule != rule {
			t.Fatalf("field %q rule mismatch: got %q want %q", field, fieldErr.Rule, rule)
		}
		if fieldErr.Message == "" {
			t.Fatalf("field %q should include a non-empty message", field)
		}
	}
}

func TestBindForm_StatusOneOf(t *testing.T) {
	var req article.CreateArticleRequest

	details, ok := bindForm(formContext(url.Values{
		"title":   {"t"},
		"content": {"c"},
		"status":  {"deleted"},
	}), &req)
	if ok {
		t.Fatalf("expected bind failure")
	}

	fields, _ := details.(gin.H)["fields"].([]FieldError)
	if len(fields) != 1 || fields[0].Field != "status" || fields[0].Rule != "oneof" {
		t.Fatalf("unexpected fields %+v", fields)
	}
	if fields[0].Message != "must be one of draft, published, archived" {
		t.Fatalf("unexpected message %q", fields[0].Message)
	}
}

func TestBindForm_BlankTitle(t *testing.T) {
	var req article.CreateArticleRequest

	details, ok := bindForm(formContext(url.Values{
		"title":   {"   "},
		"content": {"c"},
	}), &req)
	if ok {
		t.Fatalf("expected bind failure")
	}

	fields, _ := details.(gin.H)["fields"].([]FieldError)
	if len(fields) != 1 || fields[0].Field != "title" || fields[0].Rule != "notblank" {
		t.Fatalf("unexpected fields %+v", fields)
	}
}

func TestBindForm_BadNumber(t *testing.T) {
	var req article.CreateArticleRequest

	details, ok := bindForm(formContext(url.Values{
		"title":       {"t"},
		"content":     {"c"},
		"category_id": {"news"},
	}), &req)
	if ok {
		t.Fatalf("expected bind failure")
	}

	if details.(gin.H)["form"] != "invalid_number" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestBindForm_OK(t *testing.T) {
	var req article.CreateArticleRequest

	_, ok := bindForm(formContext(url.Values{
		"title":       {"Hello"},
		"content":     {"body"},
		"category_id": {""},
		"status":      {"published"},
	}), &req)
	if !ok {
		t.Fatalf("expected bind success")
	}

	if req.Title != "Hello" || req.Status != article.StatusPublished {
		t.Fatalf("unexpected request %+v", req)
	}
}
