// Package handlers exposes the content services over HTTP: the admin API, the public
// JSON API and the server-rendered pages.
package handlers

import (
	"errors"
	"strings"

	"github.com/dmitrymomot/b2bnews/internal/auth"
	"github.com/dmitrymomot/b2bnews/internal/content"
	"github.com/dmitrymomot/b2bnews/internal/server"
	"github.com/dmitrymomot/b2bnews/pkg/storage"
)

// MapError translates content, auth and storage errors into HTTP errors.
func MapError(err error) *server.HTTPError {
	switch {
	case errors.Is(err, content.ErrNotFound):
		return server.ErrNotFound("not found", server.WithError(err))
	case errors.Is(err, storage.ErrFileTooLarge):
		return server.ErrRequestTooLarge("file is too large", server.WithError(err))
	case errors.Is(err, content.ErrInvalidInput):
		return server.ErrUnprocessable(inputMessage(err), server.WithError(err))
	case errors.Is(err, content.ErrUploadUnavailable):
		return server.ErrServiceUnavailable("media uploads are not configured", server.WithError(err))
	case errors.Is(err, auth.ErrInvalidCredentials):
		return server.ErrUnauthorized("invalid credentials", server.WithError(err))
	case errors.Is(err, auth.ErrUnauthorized):
		return server.ErrUnauthorized("unauthorized", server.WithError(err))
	case errors.Is(err, auth.ErrNotConfigured):
		return server.ErrServiceUnavailable("admin login is not configured", server.WithError(err))
	}
	return nil
}

// inputMessage keeps the detail of a validation error without the package prefix.
func inputMessage(err error) string {
	msg := strings.ReplaceAll(err.Error(), "\n", ": ")
	return strings.TrimPrefix(msg, "content: ")
}
