// Package fs provides file-based storage for site pages, gallery images
// and the site sitemap.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jacinteriors/sitepatch"
)

// Ensure Store implements sitepatch.PageStore at compile time.
var _ sitepatch.PageStore = (*Store)(nil)

// Store reads and writes whole HTML files. Relative paths are resolved
// against the base directory.
type Store struct {
	baseDir string
}

// NewStore creates a new Store rooted at baseDir. An empty baseDir uses
// paths as given.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) resolve(path string) string {
	if s.baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.baseDir, path)
}

// ReadPage returns the file content.
// Returns ENOTFOUND if the file does not exist.
func (s *Store) ReadPage(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(s.resolve(path))
	if errors.Is(err, os.ErrNotExist) {
		return "", sitepatch.Errorf(sitepatch.ENOTFOUND, "page %q not found", path)
	} else if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// WritePage replaces the file content atomically: the content is written
// to a temporary file in the same directory, then renamed over the target.
func (s *Store) WritePage(ctx context.Context, path string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeFileAtomic(s.resolve(path), []byte(content)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// writeFileAtomic writes data next to path and renames it into place,
// keeping the existing file's permissions.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
