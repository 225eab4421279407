package snapshot

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// File stores each snapshot as <dir>/<key>.json.
// Writes go to a temp file that is renamed over the target, so a crash never leaves
// a half-written snapshot.
type File struct {
	dir string
}

// NewFile creates the directory if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Join(ErrSave, err)
	}
	return &File{dir: dir}, nil
}

func (f *File) Load(_ context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrLoad, err)
	}
	return data, nil
}

func (f *File) Save(_ context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, "."+key+".*.tmp")
	if err != nil {
		return errors.Join(ErrSave, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Join(ErrSave, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Join(ErrSave, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(ErrSave, err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return errors.Join(ErrSave, err)
	}
	return nil
}

func (f *File) Close() error { return nil }

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}
