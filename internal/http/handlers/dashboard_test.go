package handlers_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/geocoder89/antologia/internal/actorctx"
	"github.com/geocoder89/antologia/internal/domain/article"
	"github.com/geocoder89/antologia/internal/domain/category"
	"github.com/geocoder89/antologia/internal/domain/user"
	"github.com/geocoder89/antologia/internal/http/handlers"
	"github.com/geocoder89/antologia/internal/session"
	"github.com/gin-gonic/gin"
)

// Make sure Gin does not spam the console during the test
func init() {
	gin.SetMode(gin.TestMode)
}

// Fake repository implementations of the handlers.ArticleStore interface
type fakeArticles struct {
	createFn func(ctx context.Context, req article.CreateArticleRequest) (article.Article, error)
	getFn    func(ctx context.Context, id int64) (article.Article, error)
	listFn   func(ctx context.Context, filter article.ListFilter) ([]article.Article, error)
	updateFn func(ctx context.Context, id int64, req article.UpdateArticleRequest) (article.Article, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (f *fakeArticles) Create(ctx context.Context, req article.CreateArticleRequest) (article.Article, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return article.Article{}, nil
}

func (f *fakeArticles) GetByID(ctx context.Context, id int64) (article.Article, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return article.Article{}, article.ErrNotFound
}

func (f *fakeArticles) List(ctx context.Context, filter article.ListFilter) ([]article.Article, error) {
	if f.listFn != nil {
		return f.listFn(ctx, filter)
	}
	return []article.Article{}, nil
}

func (f *fakeArticles) Update(ctx context.Context, id int64, req article.UpdateArticleRequest) (article.Article, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, req)
	}
	return article.Article{}, nil
}

func (f *fakeArticles) Delete(ctx context.Context, id int64) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeCategories struct {
	listFn   func(ctx context.Context) ([]category.Category, error)
	createFn func(ctx context.Context, req category.CreateCategoryRequest) (category.Category, error)
}

func (f *fakeCategories) List(ctx context.Context) ([]category.Category, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return []category.Category{}, nil
}

func (f *fakeCategories) Create(ctx context.Context, req category.CreateCategoryRequest) (category.Category, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return category.Category{ID: 1, Name: req.Name}, nil
}

// small helper which mounts one handler behind a fixed session
func setupRouter(method, path string, s session.Session, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, func(ctx *gin.Context) {
		ctx.Request = ctx.Request.WithContext(actorctx.WithSession(ctx.Request.Context(), s))
		h(ctx)
	})

	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newDashboard(articles handlers.ArticleStore, cats handlers.CategoryLister) *handlers.DashboardHandler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handlers.NewDashboardHandler(articles, cats, handlers.JSONRenderer{}, "/base", log)
}

var (
	author = session.Session{UserID: 10, Username: "ana", Role: user.RoleAuthor}
	editor = session.Session{UserID: 20, Username: "ed", Role: user.RoleEditor}
)

func TestCreateArticleHandler(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		createErr  error
		wantStatus int
		wantCalled bool
	}{
		{"ok", url.Values{"title": {"T"}, "content": {"C"}}, nil, http.StatusSeeOther, true},
		{"missing content", url.Values{"title": {"T"}}, nil, http.StatusBadRequest, false},
		{"blank title", url.Values{"title": {"   "}, "content": {"C"}}, nil, http.StatusBadRequest, false},
		{"title without slug", url.Values{"title": {"T"}, "content": {"C"}}, article.ErrBlankTitle, http.StatusBadRequest, true},
		{"bad status", url.Values{"title": {"T"}, "content": {"C"}, "status": {"gone"}}, nil, http.StatusBadRequest, false},
		{"slug taken", url.Values{"title": {"T"}, "content": {"C"}}, article.ErrSlugTaken, http.StatusConflict, true},
		{"storage error", url.Values{"title": {"T"}, "content": {"C"}}, errors.New("db down"), http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			repo := &fakeArticles{
				createFn: func(ctx context.Context, req article.CreateArticleRequest) (article.Article, error) {
					called = true
					if req.AuthorID != author.UserID {
						t.Fatalf("author must come from the session, got %d", req.AuthorID)
					}
					return article.Article{ID: 1}, tt.createErr
				},
			}

			h := newDashboard(repo, &fakeCategories{})
			r := setupRouter(http.MethodPost, "/new", author, h.CreateArticle)

			w := postForm(r, "/new", tt.form)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body=%s", w.Code, tt.wantStatus, w.Body.String())
			}
			if called != tt.wantCalled {
				t.Fatalf("create called = %v, want %v", called, tt.wantCalled)
			}
			if tt.wantStatus == http.StatusSeeOther && w.Header().Get("Location") != "/base/dashboard" {
				t.Fatalf("unexpected redirect %q", w.Header().Get("Location"))
			}
			if tt.wantStatus != http.StatusSeeOther && !strings.Contains(w.Body.String(), `"view":"new-article"`) {
				t.Fatalf("failed create must re-render the form: %s", w.Body.String())
			}
		})
	}
}

func TestUpdateArticleHandler_Ownership(t *testing.T) {
	owned := article.Article{ID: 5, AuthorID: author.UserID, Title: "t", Status: article.StatusDraft}
	foreign := article.Article{ID: 6, AuthorID: 99, Title: "t", Status: article.StatusDraft}

	tests := []struct {
		name       string
		sess       session.Session
		id         string
		wantStatus int
	}{
		{"owner", author, "5", http.StatusSeeOther},
		{"not owner", author, "6", http.StatusForbidden},
		{"editor on foreign", editor, "6", http.StatusSeeOther},
		{"missing", editor, "7", http.StatusNotFound},
		{"bad id", editor, "x", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeArticles{
				getFn: func(ctx context.Context, id int64) (article.Article, error) {
					switch id {
					case owned.ID:
						return owned, nil
					case foreign.ID:
						return foreign, nil
					}
					return article.Article{}, article.ErrNotFound
				},
				updateFn: func(ctx context.Context, id int64, req article.UpdateArticleRequest) (article.Article, error) {
					if tt.wantStatus != http.StatusSeeOther {
						t.Fatalf("update must not run")
					}
					return article.Article{ID: id}, nil
				},
			}

			h := newDashboard(repo, &fakeCategories{})
			r := setupRouter(http.MethodPost, "/edit", tt.sess, h.UpdateArticle)

			w := postForm(r, "/edit?id="+tt.id, url.Values{"title": {"T"}, "content": {"C"}})
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body=%s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestUpdateArticleHandler_BlankTitle(t *testing.T) {
	repo := &fakeArticles{
		getFn: func(ctx context.Context, id int64) (article.Article, error) {
			return article.Article{ID: id, AuthorID: author.UserID, Title: "t"}, nil
		},
		updateFn: func(ctx context.Context, id int64, req article.UpdateArticleRequest) (article.Article, error) {
			t.Fatalf("update must not run for a blank title")
			return article.Article{}, nil
		},
	}

	h := newDashboard(repo, &fakeCategories{})
	r := setupRouter(http.MethodPost, "/edit", author, h.UpdateArticle)

	w := postForm(r, "/edit?id=5", url.Values{"title": {"\t  "}, "content": {"C"}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"rule":"notblank"`) {
		t.Fatalf("expected a notblank field error: %s", w.Body.String())
	}
}

func TestDashboardHandler_Scopes(t *testing.T) {
	tests := []struct {
		name      string
		sess      session.Session
		wantCalls int
		wantScope bool // author filter set
	}{
		{"subscriber sees nothing", session.Session{UserID: 1, Role: user.RoleSubscriber}, 0, false},
		{"author sees own", author, 2, true},
		{"editor sees all", editor, 2, false},
		{"admin sees all", session.Session{UserID: 2, Role: user.RoleAdmin}, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			var statuses []article.Status

			repo := &fakeArticles{
				listFn: func(ctx context.Context, filter article.ListFilter) ([]article.Article, error) {
					calls++
					statuses = append(statuses, filter.Status)
					if (filter.AuthorID != nil) != tt.wantScope {
						t.Fatalf("author filter = %v, want scoped=%v", filter.AuthorID, tt.wantScope)
					}
					if filter.AuthorID != nil && *filter.AuthorID != tt.sess.UserID {
						t.Fatalf("scoped to %d, want %d", *filter.AuthorID, tt.sess.UserID)
					}
					return []article.Article{}, nil
				},
			}

			h := newDashboard(repo, &fakeCategories{})
			r := setupRouter(http.MethodGet, "/dashboard", tt.sess, h.Dashboard)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			if calls != tt.wantCalls {
				t.Fatalf("list calls = %d, want %d", calls, tt.wantCalls)
			}
			if calls == 2 && (statuses[0] != article.StatusDraft || statuses[1] != article.StatusPublished) {
				t.Fatalf("unexpected statuses %v", statuses)
			}
		})
	}
}

func TestDashboardHandler_ListError(t *testing.T) {
	repo := &fakeArticles{
		listFn: func(ctx context.Context, filter article.ListFilter) ([]article.Article, error) {
			return nil, errors.New("db down")
		},
	}

	h := newDashboard(repo, &fakeCategories{})
	r := setupRouter(http.MethodGet, "/dashboard", editor, h.Dashboard)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCategoriesHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		createErr  error
		wantStatus int
	}{
		{"ok", url.Values{"name": {"News"}}, nil, http.StatusSeeOther},
		{"missing name", url.Values{"description": {"d"}}, nil, http.StatusBadRequest},
		{"blank name", url.Values{"name": {" \t "}}, nil, http.StatusBadRequest},
		{"duplicate", url.Values{"name": {"News"}}, category.ErrSlugTaken, http.StatusConflict},
		{"storage error", url.Values{"name": {"News"}}, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cats := &fakeCategories{
				createFn: func(ctx context.Context, req category.CreateCategoryRequest) (category.Category, error) {
					return category.Category{ID: 1}, tt.createErr
				},
			}

			log := slog.New(slog.NewTextHandler(io.Discard, nil))
			h := handlers.NewCategoriesHandler(cats, handlers.JSONRenderer{}, "/base", log)
			r := setupRouter(http.MethodPost, "/categories", session.Session{UserID: 1, Role: user.RoleAdmin}, h.Create)

			w := postForm(r, "/categories", tt.form)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body=%s", w.Code, tt.wantStatus, w.Body.String())
			}
			if w.Code == http.StatusSeeOther && w.Header().Get("Location") != "/base/dashboard/categories" {
				t.Fatalf("unexpected redirect %q", w.Header().Get("Location"))
			}
		})
	}
}
