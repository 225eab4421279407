// Package auth implements the admin login: credential check, session tokens kept in a
// session store and a signed cookie carrying the token.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/dmitrymomot/b2bnews/pkg/cookie"
	"github.com/dmitrymomot/b2bnews/pkg/logger"
	"github.com/dmitrymomot/b2bnews/pkg/session"
)

var (
	ErrNotConfigured      = errors.New("auth: admin credentials are not configured")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrEmptyPassword      = errors.New("auth: password is empty")
	ErrUnauthorized       = errors.New("auth: not logged in")
)

// CookieName is the cookie that carries the session token.
const CookieName = "admin_auth"

// Config holds admin authentication settings.
type Config struct {
	Username     string        `env:"ADMIN_USERNAME" envDefault:"admin"`
	PasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	CookieSecret string        `env:"COOKIE_SECRET"`
	SecureCookie bool          `env:"COOKIE_SECURE" envDefault:"false"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

// Service logs the admin in and out.
type Service struct {
	creds   CredentialStore
	store   session.Store
	cookies *cookie.Manager
	ttl     time.Duration
	log     *slog.Logger
}

// NewService creates the service. A nil creds disables login: every attempt fails
// with ErrNotConfigured.
func NewService(creds CredentialStore, store session.Store, cookies *cookie.Manager, ttl time.Duration, log *slog.Logger) *Service {
	if log == nil {
		log = logger.NewNope()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{creds: creds, store: store, cookies: cookies, ttl: ttl, log: log}
}

// Login verifies the credentials, opens a session and sets the cookie.
func (s *Service) Login(w http.ResponseWriter, r *http.Request, username, password string) (*session.Session, error) {
	ctx := r.Context()
	if s.creds == nil {
		return nil, ErrNotConfigured
	}

	userID, err := s.creds.Verify(ctx, username, password)
	if err != nil {
		s.log.WarnContext(ctx, "admin login failed", slog.String("username", username), slog.String("ip", clientIP(r)))
		return nil, err
	}

	sess, err := session.New(userID, s.ttl)
	if err != nil {
		return nil, err
	}
	sess.IP = clientIP(r)
	sess.UserAgent = r.UserAgent()
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, err
	}

	s.cookies.SetSigned(w, CookieName, sess.Token, int(s.ttl.Seconds()))
	s.log.InfoContext(ctx, "admin logged in", slog.String("session_id", sess.ID), slog.String("user", userID))
	return sess, nil
}

// Logout ends the current session, if any, and clears the cookie.
func (s *Service) Logout(w http.ResponseWriter, r *http.Request) error {
	defer s.cookies.Delete(w, CookieName)

	token, err := s.cookies.GetSigned(r, CookieName)
	if err != nil {
		return nil
	}
	if err := s.store.Delete(r.Context(), token); err != nil && !errors.Is(err, session.ErrInvalidToken) {
		return err
	}
	s.log.InfoContext(r.Context(), "admin logged out")
	return nil
}

// Current returns the session of the request or ErrUnauthorized.
func (s *Service) Current(r *http.Request) (*session.Session, error) {
	token, err := s.cookies.GetSigned(r, CookieName)
	if err != nil {
		return nil, ErrUnauthorized
	}
	sess, err := s.store.Get(r.Context(), token)
	switch {
	case err == nil:
		return sess, nil
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired), errors.Is(err, session.ErrInvalidToken):
		return nil, ErrUnauthorized
	default:
		return nil, err
	}
}

type ctxKey struct{}

// WithSession stores sess in ctx.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext returns the session stored by Require.
func FromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(ctxKey{}).(*session.Session)
	return sess, ok
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
