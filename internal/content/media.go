package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/dmitrymomot/b2bnews/pkg/snapshot"
	"github.com/dmitrymomot/b2bnews/pkg/storage"
)

const mediaPrefix = "media"

// MediaInput describes a media item that is already hosted somewhere.
type MediaInput struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Alt  string `json:"alt"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// MediaPatch holds a partial media update. Nil fields are left untouched.
type MediaPatch struct {
	URL  *string `json:"url,omitempty"`
	Name *string `json:"name,omitempty"`
	Alt  *string `json:"alt,omitempty"`
	Type *string `json:"type,omitempty"`
	Size *int64  `json:"size,omitempty"`
}

// Upload is a file to store and add to the library.
type Upload struct {
	Body        io.Reader
	Name        string
	Alt         string
	ContentType string
	Size        int64
}

// MediaService manages the media library. New items go to the front.
type MediaService struct {
	items *Collection[MediaItem]
	opts  *options
}

func NewMediaService(backend snapshot.Backend, opts ...Option) *MediaService {
	o := applyOptions(opts)
	return &MediaService{
		items: NewCollection[MediaItem](backend, KeyMedia, o.log),
		opts:  o,
	}
}

// Load reads the stored library. defaults is used when nothing has been stored yet;
// items without an updatedAt are stamped with the current time.
func (s *MediaService) Load(ctx context.Context, defaults []MediaItem) error {
	return s.items.Load(ctx, nil, func() []MediaItem {
		items := slices.Clone(defaults)
		for i := range items {
			if items[i].UpdatedAt == "" {
				items[i].UpdatedAt = isoTime(s.opts.now())
			}
		}
		return items
	})
}

// Flush writes the current library to the backend.
func (s *MediaService) Flush(ctx context.Context) error {
	return s.items.Flush(ctx)
}

// UploadsEnabled reports whether Upload can store files.
func (s *MediaService) UploadsEnabled() bool {
	return s.opts.storage != nil
}

func (s *MediaService) List() []MediaItem {
	return s.items.All()
}

func (s *MediaService) Get(id string) (MediaItem, error) {
	m, ok := s.items.Find(func(m MediaItem) bool { return m.ID == id })
	if !ok {
		return MediaItem{}, ErrNotFound
	}
	return m, nil
}

// Add registers an externally hosted file.
func (s *MediaService) Add(ctx context.Context, in MediaInput) (MediaItem, error) {
	m := MediaItem{
		ID:        s.opts.newID(),
		URL:       strings.TrimSpace(in.URL),
		Name:      strings.TrimSpace(in.Name),
		Alt:       in.Alt,
		Type:      in.Type,
		Size:      in.Size,
		UpdatedAt: isoTime(s.opts.now()),
	}
	if err := validateMedia(m); err != nil {
		return MediaItem{}, err
	}
	return m, s.add(ctx, m)
}

// Upload stores the file and adds it to the library.
func (s *MediaService) Upload(ctx context.Context, up Upload) (MediaItem, error) {
	if s.opts.storage == nil {
		return MediaItem{}, ErrUploadUnavailable
	}

	info, err := s.opts.storage.Put(ctx, storage.Object{
		Body:        up.Body,
		Prefix:      mediaPrefix,
		ContentType: up.ContentType,
		Size:        up.Size,
		Rules:       storage.ImageRules,
		ACL:         storage.ACLPublicRead,
	})
	if err != nil {
		if errors.Is(err, storage.ErrEmptyFile) || errors.Is(err, storage.ErrFileTooLarge) || errors.Is(err, storage.ErrInvalidMIME) {
			return MediaItem{}, errors.Join(ErrInvalidInput, err)
		}
		return MediaItem{}, err
	}

	m := MediaItem{
		ID:        s.opts.newID(),
		URL:       info.URL,
		Name:      strings.TrimSpace(up.Name),
		Alt:       up.Alt,
		Type:      info.ContentType,
		Size:      info.Size,
		UpdatedAt: isoTime(s.opts.now()),
		Key:       info.Key,
	}
	if m.Name == "" {
		m.Name = info.Key[strings.LastIndexByte(info.Key, '/')+1:]
	}
	if err := s.add(ctx, m); err != nil {
		s.removeObject(ctx, m.Key)
		return MediaItem{}, err
	}
	return m, nil
}

func (s *MediaService) Update(ctx context.Context, id string, p MediaPatch) (MediaItem, error) {
	m, err := s.items.Update(ctx, func(m MediaItem) bool { return m.ID == id }, func(cur MediaItem) (MediaItem, error) {
		next := cur
		if p.URL != nil {
			next.URL = strings.TrimSpace(*p.URL)
		}
		if p.Name != nil {
			next.Name = strings.TrimSpace(*p.Name)
		}
		set(&next.Alt, p.Alt)
		set(&next.Type, p.Type)
		set(&next.Size, p.Size)
		if err := validateMedia(next); err != nil {
			return MediaItem{}, err
		}
		next.UpdatedAt = isoTime(s.opts.now())
		return next, nil
	})
	if err != nil {
		return MediaItem{}, err
	}
	s.opts.log.InfoContext(ctx, "media item updated", slog.String("id", m.ID))
	return m, nil
}

// Delete removes the item and, for uploaded files, the stored object.
func (s *MediaService) Delete(ctx context.Context, id string) error {
	m, ok := s.items.Find(func(m MediaItem) bool { return m.ID == id })
	if !ok {
		return ErrNotFound
	}
	if err := s.items.Delete(ctx, func(m MediaItem) bool { return m.ID == id }); err != nil {
		return err
	}
	s.removeObject(ctx, m.Key)
	s.opts.log.InfoContext(ctx, "media item deleted", slog.String("id", id))
	return nil
}

func (s *MediaService) add(ctx context.Context, m MediaItem) error {
	if err := s.items.Prepend(ctx, m); err != nil {
		return err
	}
	s.opts.log.InfoContext(ctx, "media item added", slog.String("id", m.ID), slog.String("url", m.URL))
	return nil
}

// removeObject deletes an uploaded object. Failures are logged only: the library
// entry is already gone.
func (s *MediaService) removeObject(ctx context.Context, key string) {
	if key == "" || s.opts.storage == nil {
		return
	}
	if err := s.opts.storage.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.opts.log.WarnContext(ctx, "failed to delete stored media object",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

func validateMedia(m MediaItem) error {
	if m.URL == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidInput)
	}
	if m.Size < 0 {
		return fmt.Errorf("%w: size must not be negative", ErrInvalidInput)
	}
	return nil
}
