package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// CredentialStore verifies admin credentials and returns the user id on success.
type CredentialStore interface {
	Verify(ctx context.Context, username, password string) (string, error)
}

// StaticCredentials holds a single admin account with a bcrypt password hash.
type StaticCredentials struct {
	username string
	hash     []byte
}

// NewStaticCredentials validates hash and returns the store.
func NewStaticCredentials(username, hash string) (*StaticCredentials, error) {
	if username == "" || hash == "" {
		return nil, ErrNotConfigured
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, errors.Join(ErrNotConfigured, err)
	}
	return &StaticCredentials{username: username, hash: []byte(hash)}, nil
}

func (c *StaticCredentials) Verify(_ context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	// Always run bcrypt so a wrong username costs the same as a wrong password.
	passErr := bcrypt.CompareHashAndPassword(c.hash, []byte(password))
	if !userOK || passErr != nil {
		return "", ErrInvalidCredentials
	}
	return c.username, nil
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

var _ CredentialStore = (*StaticCredentials)(nil)
