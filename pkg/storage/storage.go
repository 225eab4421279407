package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidConfig = errors.New("storage: invalid configuration")
	ErrEmptyFile     = errors.New("storage: file is empty")
	ErrFileTooLarge  = errors.New("storage: file exceeds size limit")
	ErrInvalidMIME   = errors.New("storage: file type not allowed")
	ErrNotFound      = errors.New("storage: file not found")
	ErrAccessDenied  = errors.New("storage: access denied")
	ErrUploadFailed  = errors.New("storage: upload failed")
	ErrDeleteFailed  = errors.New("storage: delete failed")
)

// Storage stores objects and returns their public URLs.
type Storage interface {
	Put(ctx context.Context, obj Object) (*FileInfo, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// ACL is the canned access policy of a stored object.
type ACL string

const (
	// ACLPrivate makes the object readable only with bucket credentials.
	ACLPrivate ACL = "private"

	// ACLPublicRead makes the object publicly readable.
	ACLPublicRead ACL = "public-read"
)

// Object describes an upload.
// An empty Key is generated as {prefix}/{uuid}{ext}.
// The content type is always sniffed from the body. When Rules restrict types the
// sniffed type is checked and stored; otherwise a declared ContentType wins.
// An empty ACL means the storage default, which is private unless configured.
type Object struct {
	Body        io.Reader
	Key         string
	Prefix      string
	ContentType string
	Size        int64
	Rules       *Rules
	ACL         ACL
}

// FileInfo describes a stored object.
type FileInfo struct {
	Key         string
	URL         string
	ContentType string
	Size        int64
	ACL         ACL
}

// Config holds S3-compatible storage configuration.
type Config struct {
	Bucket    string `env:"S3_BUCKET"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	// Custom endpoint for MinIO or other S3-compatible services.
	Endpoint  string `env:"S3_ENDPOINT"`
	PathStyle bool   `env:"S3_PATH_STYLE" envDefault:"false"`
	// CDN or public prefix for object URLs.
	PublicURL string `env:"S3_PUBLIC_URL"`
	// ACL for objects that do not set one.
	DefaultACL ACL `env:"S3_DEFAULT_ACL" envDefault:"private"`
}

// Enabled reports whether enough is configured to talk to a bucket.
func (c Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}
