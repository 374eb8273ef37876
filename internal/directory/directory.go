// Package directory registers users and opens and closes their sessions.
package directory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/geocoder89/antologia/internal/auth"
	"github.com/geocoder89/antologia/internal/domain/user"
	"github.com/geocoder89/antologia/internal/observability"
	"github.com/geocoder89/antologia/internal/security"
	"github.com/geocoder89/antologia/internal/session"
	"github.com/google/uuid"
)

// ErrInvalidCredentials covers both an unknown username and a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

type UserStore interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	GetByUsername(ctx context.Context, username string) (user.User, error)
}

type TokenManager interface {
	Issue(sessionID string, userID int64) (string, time.Time, error)
	Verify(token string) (*auth.Claims, error)
}

type Service struct {
	users    UserStore
	sessions session.Store
	tokens   TokenManager
	ttl      time.Duration
	prom     *observability.Prom
}

func NewService(users UserStore, sessions session.Store, tokens TokenManager, ttl time.Duration, prom *observability.Prom) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		ttl:      ttl,
		prom:     prom,
	}
}

// Register creates an author account. Duplicate username or email surfaces
// as user.ErrAlreadyExists from the store.
func (s *Service) Register(ctx context.Context, req user.RegisterRequest) (user.User, error) {
	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.users.Create(ctx, user.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         user.DefaultRole,
	})
}

// Login checks the credentials and, on success only, stores a new session
// and returns the signed token naming it.
func (s *Service) Login(ctx context.Context, username, password string) (token string, expiresAt time.Time, sess session.Session, err error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			s.prom.ObserveLogin("invalid")
			return "", time.Time{}, session.Session{}, ErrInvalidCredentials
		}
		s.prom.ObserveLogin("error")
		return "", time.Time{}, session.Session{}, err
	}

	if err := security.CheckPassword(u.PasswordHash, password); err != nil {
		s.prom.ObserveLogin("invalid")
		return "", time.Time{}, session.Session{}, ErrInvalidCredentials
	}

	sid := uuid.NewString()

	token, expiresAt, err = s.tokens.Issue(sid, u.ID)
	if err != nil {
		s.prom.ObserveLogin("error")
		return "", time.Time{}, session.Session{}, fmt.Errorf("issue session token: %w", err)
	}

	sess = session.Session{UserID: u.ID, Username: u.Username, Role: u.Role}

	if err := s.sessions.Save(ctx, sid, sess, s.ttl); err != nil {
		s.prom.ObserveLogin("error")
		return "", time.Time{}, session.Session{}, fmt.Errorf("save session: %w", err)
	}

	s.prom.ObserveLogin("ok")
	return token, expiresAt, sess, nil
}

// Resolve maps a cookie token to its live session.
func (s *Service) Resolve(ctx context.Context, token string) (session.Session, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return session.Session{}, err
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return session.Session{}, err
	}

	// subject and stored session must agree
	if strconv.FormatInt(sess.UserID, 10) != claims.Subject {
		return session.Session{}, session.ErrNotFound
	}

	return sess, nil
}

// Logout destroys the session behind token. Unknown or invalid tokens are
// not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil
	}

	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil {
		// expired or already logged out
		if errors.Is(err, session.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("delete session: %w", err)
	}

	s.prom.ObserveLogout()
	return nil
}
