package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/vdomkit/internal/errors"
)

// Store persists encoded snapshots.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// FileStore writes snapshots below a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir. The directory is created on
// the first Put.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the root directory.
func (s *FileStore) Dir() string { return s.dir }

// Put writes data to dir/key. Keys may not leave the directory.
func (s *FileStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return errors.New("S001").Wrap(err)
	}

	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return errors.New("S001").WithDetailf("invalid key %q", key)
	}

	path := filepath.Join(s.dir, clean)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.New("S001").WithDetailf("create %s", filepath.Dir(path)).Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("S001").WithDetailf("write %s", path).Wrap(err)
	}
	return nil
}
