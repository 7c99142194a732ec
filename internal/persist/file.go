// Package persist stores a key-value mapping in a single JSON file.
package persist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/heysubinoy/kvs/internal/store"
	"github.com/heysubinoy/kvs/pkg/kv"
)

const fileMode fs.FileMode = 0o644

// FileStore loads and saves a store at a fixed path.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLogger sets the logger used for debug output. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *FileStore) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFileStore returns a FileStore backed by the file at path.
func NewFileStore(path string, opts ...Option) *FileStore {
	f := &FileStore{
		path:   path,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the file location.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the store from disk. A missing file yields an empty store.
func (f *FileStore) Load() (*store.MemStore, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			f.logger.Debug("store file not found, starting empty", zap.String("path", f.path))
			return store.NewMemStore(), nil
		}
		return nil, newError(KindIO, "load", f.path, err)
	}

	entries, err := Decode(data)
	if err != nil {
		return nil, newError(KindCorruptStore, "load", f.path, err)
	}

	f.logger.Debug("store loaded", zap.String("path", f.path), zap.Int("entries", len(entries)))
	return store.NewMemStoreFrom(entries), nil
}

// Save replaces the file with the contents of s. The data is written to a
// temporary file in the same directory and renamed over the target, so the
// file on disk is always either the old or the new version.
func (f *FileStore) Save(s kv.Store) error {
	entries := s.Entries()
	data, err := Encode(entries)
	if err != nil {
		return newError(KindIO, "save", f.path, fmt.Errorf("encode: %w", err))
	}

	if err := f.writeAtomic(data); err != nil {
		return newError(KindIO, "save", f.path, err)
	}

	f.logger.Debug("store saved", zap.String("path", f.path), zap.Int("entries", len(entries)))
	return nil
}

func (f *FileStore) writeAtomic(data []byte) (err error) {
	dir, base := filepath.Split(f.path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err == nil {
			return
		}
		_ = tmp.Close()
		if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			f.logger.Warn("failed to remove temporary store file", zap.String("path", tmpName), zap.Error(rmErr))
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err = os.Chmod(tmpName, fileMode); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err = os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Clear deletes the file. Clearing a store that was never saved is a no-op.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			f.logger.Debug("store file already absent", zap.String("path", f.path))
			return nil
		}
		return newError(KindIO, "clear", f.path, err)
	}

	f.logger.Debug("store cleared", zap.String("path", f.path))
	return nil
}
