package session

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/b2bnews/pkg/cache"
)

// Store defines the interface for session persistence.
type Store interface {
	// Create persists a new session.
	Create(ctx context.Context, s *Session) error

	// Get retrieves a session by its token.
	// Returns ErrNotFound if the session doesn't exist.
	// Returns ErrExpired if the session has expired.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes a session by its token.
	Delete(ctx context.Context, token string) error
}

// CacheStore keeps sessions in a cache keyed by token. Entries expire with the session.
type CacheStore struct {
	cache cache.Cache[Session]
	now   func() time.Time
}

// NewCacheStore creates a Store on top of c.
func NewCacheStore(c cache.Cache[Session]) *CacheStore {
	return &CacheStore{cache: c, now: time.Now}
}

func (s *CacheStore) Create(ctx context.Context, sess *Session) error {
	if !ValidToken(sess.Token) {
		return ErrInvalidToken
	}
	ttl := sess.TTL(s.now())
	if ttl == 0 {
		return ErrExpired
	}
	if err := s.cache.Set(ctx, sess.Token, *sess, ttl); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

func (s *CacheStore) Get(ctx context.Context, token string) (*Session, error) {
	if !ValidToken(token) {
		return nil, ErrInvalidToken
	}
	sess, err := s.cache.Get(ctx, token)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStore, err)
	}
	if sess.IsExpired(s.now()) {
		_ = s.cache.Delete(ctx, token)
		return nil, ErrExpired
	}
	return &sess, nil
}

func (s *CacheStore) Delete(ctx context.Context, token string) error {
	if !ValidToken(token) {
		return ErrInvalidToken
	}
	if err := s.cache.Delete(ctx, token); err != nil && !errors.Is(err, cache.ErrNotFound) {
		return errors.Join(ErrStore, err)
	}
	return nil
}

var _ Store = (*CacheStore)(nil)
