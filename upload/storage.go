// Package upload validates incoming guestbook images and manages their
// lifecycle from temporary stash to permanent storage.
package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage stores promoted files and serves their URIs.
type FileStorage interface {
	Save(ctx context.Context, path string, reader io.Reader, size int64) error
	Delete(ctx context.Context, path string) error
	GetURL(ctx context.Context, path string) (string, error)
}

// validateKey rejects storage keys containing path traversal segments.
func validateKey(key string) error {
	for _, segment := range strings.Split(key, "/") {
		if segment == ".." {
			return fmt.Errorf("path traversal detected in storage key")
		}
	}
	return nil
}

// SanitizeFilename strips directory components and replaces characters that
// are unsafe in storage keys.
func SanitizeFilename(name string) string {
	base := filepath.Base(name)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "file"
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}

// LocalStorage keeps files on the local filesystem under a root directory and
// serves them from a static file route.
type LocalStorage struct {
	root    string
	baseURL string
}

// NewLocalStorage creates a disk-backed storage rooted at root. Returned URLs
// are absolute, built from baseURL (e.g. http://localhost:8080).
func NewLocalStorage(root, baseURL string) *LocalStorage {
	return &LocalStorage{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Save writes the file under the storage root, creating directories as needed.
func (s *LocalStorage) Save(_ context.Context, path string, reader io.Reader, _ int64) error {
	if err := validateKey(path); err != nil {
		return err
	}
	dest := filepath.Join(s.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		// Remove the partial file so a failed save leaves nothing behind.
		_ = os.Remove(dest)
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Delete removes a stored file. Removing a missing file is not an error.
func (s *LocalStorage) Delete(_ context.Context, path string) error {
	if err := validateKey(path); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(path)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetURL returns the absolute URL the file is served from.
func (s *LocalStorage) GetURL(_ context.Context, path string) (string, error) {
	if err := validateKey(path); err != nil {
		return "", err
	}
	return s.baseURL + "/files/" + path, nil
}
