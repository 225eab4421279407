package content

import "errors"

var (
	ErrNotFound          = errors.New("content: not found")
	ErrInvalidInput      = errors.New("content: invalid input")
	ErrUploadUnavailable = errors.New("content: media uploads are not configured")
	ErrFlush             = errors.New("content: failed to persist changes")
	ErrCorruptSnapshot   = errors.New("content: stored snapshot cannot be decoded")
)
