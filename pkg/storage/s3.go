package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
)

// S3 stores objects in an S3 bucket. Objects are private unless the object or
// Config.DefaultACL says otherwise.
type S3 struct {
	client *s3.Client
	cfg    Config
}

// NewS3 creates an S3 storage client.
func NewS3(cfg Config) (*S3, error) {
	if !cfg.Enabled() {
		return nil, ErrInvalidConfig
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	client := s3.New(s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		}
	})

	return &S3{client: client, cfg: cfg}, nil
}

func (s *S3) Put(ctx context.Context, obj Object) (*FileInfo, error) {
	// The SDK needs a seekable body to compute the payload checksum, so the
	// object is buffered.
	contentType, data, err := prepare(obj)
	if err != nil {
		return nil, err
	}

	key := objectKey(obj, contentType)
	acl := resolveACL(obj.ACL, s.cfg.DefaultACL)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ACL:           cannedACL(acl),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrUploadFailed)
	}

	return &FileInfo{Key: key, URL: s.URL(key), ContentType: contentType, Size: int64(len(data)), ACL: acl}, nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return wrapS3Error(err, ErrDeleteFailed)
	}
	return nil
}

// URL returns the public URL of key.
func (s *S3) URL(key string) string {
	if s.cfg.PublicURL != "" {
		return strings.TrimSuffix(s.cfg.PublicURL, "/") + "/" + key
	}
	if s.cfg.Endpoint != "" {
		endpoint := strings.TrimSuffix(s.cfg.Endpoint, "/")
		if s.cfg.PathStyle {
			return fmt.Sprintf("%s/%s/%s", endpoint, s.cfg.Bucket, key)
		}
		return endpoint + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

// prepare reads the body, resolves the content type and validates obj against its
// rules. A zero Size means unknown; the limit is then enforced while reading.
func prepare(obj Object) (string, []byte, error) {
	if obj.Body == nil {
		return "", nil, ErrEmptyFile
	}
	if err := obj.Rules.checkSize(obj.Size); err != nil {
		return "", nil, err
	}

	body := obj.Body
	if limit := obj.Rules.limit(); limit > 0 {
		body = io.LimitReader(body, limit+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", nil, errors.Join(ErrUploadFailed, err)
	}
	if len(data) == 0 {
		return "", nil, ErrEmptyFile
	}

	contentType := obj.Rules.resolveType(obj.ContentType, sniff(data))
	if err := obj.Rules.check(int64(len(data)), contentType); err != nil {
		return "", nil, err
	}
	return contentType, data, nil
}

// resolveACL returns the first non-empty ACL, falling back to private.
func resolveACL(acls ...ACL) ACL {
	for _, a := range acls {
		if a != "" {
			return a
		}
	}
	return ACLPrivate
}

func objectKey(obj Object, contentType string) string {
	if obj.Key != "" {
		return obj.Key
	}
	name := uuid.NewString() + ExtFromMIME(contentType)
	if prefix := strings.Trim(obj.Prefix, "/"); prefix != "" {
		return prefix + "/" + name
	}
	return name
}

func cannedACL(acl ACL) types.ObjectCannedACL {
	if acl == ACLPublicRead {
		return types.ObjectCannedACLPublicRead
	}
	return types.ObjectCannedACLPrivate
}

// wrapS3Error maps AWS error codes onto the package sentinels.
func wrapS3Error(err error, fallback error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return errors.Join(ErrNotFound, err)
		case "AccessDenied", "Forbidden":
			return errors.Join(ErrAccessDenied, err)
		}
	}
	return errors.Join(fallback, err)
}

var _ Storage = (*S3)(nil)
