package snapshot

import (
	"context"
	"errors"
	"regexp"
)

var (
	ErrNotFound   = errors.New("snapshot: not found")
	ErrInvalidKey = errors.New("snapshot: invalid key")
	ErrLoad       = errors.New("snapshot: failed to load")
	ErrSave       = errors.New("snapshot: failed to save")
)

// Backend loads and saves serialized collections.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}

// Keys are also file names, so they are restricted to a safe alphabet.
var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{1,128}$`)

func validateKey(key string) error {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return ErrInvalidKey
	}
	return nil
}
