package tablecache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DirStore persists snapshots as files in a directory, one file per key.
// Publication is atomic: data is written to a temporary file in the same
// directory and renamed onto the key, so a reader either sees a complete
// entry or none at all.
type DirStore struct {
	dir string
}

// NewDirStore returns a store rooted at dir. The directory is created on
// first publish, not here.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// DefaultDirStore returns a store under the user cache directory.
func DefaultDirStore() (*DirStore, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("tablecache: no user cache directory: %w", err)
	}

	return NewDirStore(filepath.Join(base, "algo-minblep")), nil
}

// Dir returns the store's root directory.
func (s *DirStore) Dir() string {
	return s.dir
}

// Exists reports whether a published entry exists for key.
func (s *DirStore) Exists(key string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.dir, key))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// Load reads the published entry for key.
func (s *DirStore) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	return data, err
}

// AtomicStore writes data to a temporary file in the store directory and
// renames it onto key. The rename is the publication point; an
// interrupted write leaves only an orphaned temporary file behind, never
// a partial entry at the key.
func (s *DirStore) AtomicStore(key string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".pending-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return err
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, key)); err != nil {
		os.Remove(tmp.Name())

		return err
	}

	return nil
}
