package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/antologia/internal/config"
	"github.com/geocoder89/antologia/internal/directory"
	"github.com/geocoder89/antologia/internal/domain/user"
	"github.com/geocoder89/antologia/internal/session"
	"github.com/gin-gonic/gin"
)

type Directory interface {
	Register(ctx context.Context, req user.RegisterRequest) (user.User, error)
	Login(ctx context.Context, username, password string) (string, time.Time, session.Session, error)
	Logout(ctx context.Context, token string) error
}

// SessionCookie describes the cookie that carries the session token.
type SessionCookie struct {
	Name   string
	Path   string
	Secure bool
}

func (c SessionCookie) path() string {
	if c.Path == "" {
		return "/"
	}
	return c.Path
}

func (c SessionCookie) Set(ctx *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.Name, token, maxAge, c.path(), "", c.Secure, true)
}

func (c SessionCookie) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.Name, "", -1, c.path(), "", c.Secure, true)
}

type AuthHandler struct {
	dir    Directory
	cookie SessionCookie
	render Renderer
	base   string
	log    *slog.Logger
}

func NewAuthHandler(dir Directory, cookie SessionCookie, render Renderer, basePath string, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		dir:    dir,
		cookie: cookie,
		render: render,
		base:   basePath,
		log:    log,
	}
}

func (h *AuthHandler) LoginForm(ctx *gin.Context) {
	h.render.Render(ctx, http.StatusOK, ViewLogin, nil)
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if details, ok := bindForm(ctx, &req); !ok {
		renderFormError(ctx, h.render, http.StatusBadRequest, ViewLogin, msgInvalidLogin, details, gin.H{"username": req.Username})
		return
	}

	// bcrypt plus one lookup and one session write
	cctx, cancel := config.WithRequestTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	token, expiresAt, _, err := h.dir.Login(cctx, req.Username, req.Password)
	if err != nil {
		status := http.StatusUnauthorized
		if !errors.Is(err, directory.ErrInvalidCredentials) {
			status = http.StatusInternalServerError
			h.log.ErrorContext(ctx.Request.Context(), "login failed", "err", err)
		}
		renderFormError(ctx, h.render, status, ViewLogin, msgInvalidLogin, nil, gin.H{"username": req.Username})
		return
	}

	h.cookie.Set(ctx, token, expiresAt)
	ctx.Redirect(http.StatusSeeOther, h.base+"/dashboard")
}

func (h *AuthHandler) RegisterForm(ctx *gin.Context) {
	h.render.Render(ctx, http.StatusOK, ViewRegister, nil)
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	form := func() gin.H {
		return gin.H{"username": req.Username, "email": req.Email}
	}

	if details, ok := bindForm(ctx, &req); !ok {
		renderFormError(ctx, h.render, http.StatusBadRequest, ViewRegister, msgRegisterFailed, details, form())
		return
	}

	cctx, cancel := config.WithRequestTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	if _, err := h.dir.Register(cctx, req); err != nil {
		status := http.StatusConflict
		if !errors.Is(err, user.ErrAlreadyExists) {
			status = http.StatusInternalServerError
			h.log.ErrorContext(ctx.Request.Context(), "register failed", "err", err)
		}
		renderFormError(ctx, h.render, status, ViewRegister, msgRegisterFailed, nil, form())
		return
	}

	ctx.Redirect(http.StatusSeeOther, h.base+"/login")
}

// Logout always clears the cookie and lands on the home page.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	token, _ := ctx.Cookie(h.cookie.Name)

	cctx, cancel := config.WithRequestTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.dir.Logout(cctx, token); err != nil {
		h.log.WarnContext(ctx.Request.Context(), "logout: session not removed", "err", err)
	}

	h.cookie.Clear(ctx)
	ctx.Redirect(http.StatusSeeOther, h.base+"/")
}
