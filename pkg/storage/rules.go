package storage

import (
	"net/http"
	"slices"
	"strings"
)

// Rules restrict what Put accepts. A zero MaxSize means no limit and an empty
// AllowedTypes list accepts every type.
type Rules struct {
	AllowedTypes []string
	MaxSize      int64
}

// ImageRules accept raster web image formats up to 10 MB. SVG is excluded: it can
// carry scripts and has no magic bytes to sniff.
var ImageRules = &Rules{
	AllowedTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
	MaxSize:      10 << 20,
}

func (r *Rules) check(size int64, contentType string) error {
	if err := r.checkSize(size); err != nil {
		return err
	}
	if r != nil && len(r.AllowedTypes) > 0 && !slices.Contains(r.AllowedTypes, baseType(contentType)) {
		return ErrInvalidMIME
	}
	return nil
}

func (r *Rules) checkSize(size int64) error {
	if r != nil && r.MaxSize > 0 && size > r.MaxSize {
		return ErrFileTooLarge
	}
	return nil
}

func (r *Rules) limit() int64 {
	if r == nil {
		return 0
	}
	return r.MaxSize
}

// sniff returns the content type detected from the magic bytes of data.
func sniff(data []byte) string {
	return http.DetectContentType(data)
}

// resolveType picks the stored content type. Type restrictions are checked against
// what the bytes are, never against what the client declared.
func (r *Rules) resolveType(declared, sniffed string) string {
	if r != nil && len(r.AllowedTypes) > 0 {
		return sniffed
	}
	if declared != "" {
		return declared
	}
	return sniffed
}

func baseType(contentType string) string {
	t, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(t))
}

var extensions = map[string]string{
	"image/jpeg":       ".jpg",
	"image/png":        ".png",
	"image/gif":        ".gif",
	"image/webp":       ".webp",
	"image/svg+xml":    ".svg",
	"application/json": ".json",
	"application/pdf":  ".pdf",
}

// ExtFromMIME returns the file extension for a content type, or ".bin".
func ExtFromMIME(contentType string) string {
	if ext, ok := extensions[baseType(contentType)]; ok {
		return ext
	}
	return ".bin"
}
