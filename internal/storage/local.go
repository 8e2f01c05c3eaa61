package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MediaStore saves byte streams and hands back stable references usable as
// image/video/media URLs. Deletion is best-effort; callers treat failures as
// non-fatal.
type MediaStore interface {
	Save(r io.Reader, originalName, subfolder string) (string, error)
	Delete(ref string) error
}

// LocalStore writes media under a base directory and serves it at a URL
// prefix. References look like /static/uploads/<subfolder>/<uuid><ext>.
type LocalStore struct {
	baseDir   string
	urlPrefix string
}

// NewLocalStore creates a LocalStore rooted at baseDir
func NewLocalStore(baseDir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &LocalStore{baseDir: baseDir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

func (s *LocalStore) Save(r io.Reader, originalName, subfolder string) (string, error) {
	dir := filepath.Join(s.baseDir, subfolder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + filepath.Ext(originalName)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write media file: %w", err)
	}
	return s.urlPrefix + "/" + subfolder + "/" + name, nil
}

// Delete removes the file behind a reference previously returned by Save.
// Unknown references are ignored.
func (s *LocalStore) Delete(ref string) error {
	rel, ok := strings.CutPrefix(ref, s.urlPrefix+"/")
	if !ok {
		return nil
	}
	path := filepath.Join(s.baseDir, filepath.FromSlash(rel))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
