package storage

import (
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

var (
	ErrEmptyFilename = errors.New("filename must not be empty")
)

// FileStore persists uploaded files and hands back an opaque reference. The
// store never interprets file contents; callers keep only the reference.
type FileStore interface {
	Save(prefix, filename string, r io.Reader) (string, error)
	Open(ref string) (io.ReadCloser, error)
}

type fileStore struct {
	fs   afero.Fs
	root string
}

// NewFileStore creates a FileStore rooted at root on the given filesystem.
// Production uses afero.NewOsFs; tests use afero.NewMemMapFs.
func NewFileStore(fs afero.Fs, root string) FileStore {
	return &fileStore{fs: fs, root: root}
}

// Save writes the reader's contents under a uuid-prefixed sanitized name and
// returns the reference relative to the store root.
func (s *fileStore) Save(prefix, filename string, r io.Reader) (string, error) {
	name := sanitizeFilename(filename)
	if name == "" {
		return "", ErrEmptyFilename
	}

	ref := path.Join(prefix, uuid.New().String()+"_"+name)
	fullPath := filepath.Join(s.root, filepath.FromSlash(ref))

	if err := s.fs.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	f, err := s.fs.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return ref, nil
}

// Open returns the stored file for a previously returned reference.
func (s *fileStore) Open(ref string) (io.ReadCloser, error) {
	f, err := s.fs.Open(filepath.Join(s.root, filepath.FromSlash(ref)))
	if err != nil {
		return nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return f, nil
}

// sanitizeFilename strips any path components and characters that could
// escape the store root.
func sanitizeFilename(filename string) string {
	name := filepath.Base(filepath.Clean(filename))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	return strings.Trim(b.String(), ".")
}
